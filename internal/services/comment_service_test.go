// internal/services/comment_service_test.go
package services

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyeonwoo-dev/furniture-shop/internal/utils"
)

func newCommentService(t *testing.T) (*CommentService, *StorageService) {
	db := newTestDB(t)
	cfg := newTestConfig(t)
	storage, err := NewStorageService(cfg)
	require.NoError(t, err)
	return NewCommentService(db, storage), storage
}

// makeFileHeader builds a real multipart.FileHeader the way gin hands
// them to handlers.
func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("files", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	headers := req.MultipartForm.File["files"]
	require.Len(t, headers, 1)
	return headers[0]
}

func TestCommentServiceCreateWithFiles(t *testing.T) {
	svc, _ := newCommentService(t)
	db := svc.db

	user := createTestUser(t, db, "reviewer@example.com")
	_, product := createTestCatalog(t, db)
	option := createTestOption(t, db, product.ID, "그레이", 0, 5)

	content := []byte("fake image bytes")
	header := makeFileHeader(t, "sofa.jpg", content)

	comment, err := svc.Create(user.ID, option.ID, &CreateCommentRequest{Content: "배송이 빨랐어요"}, []*multipart.FileHeader{header})
	require.NoError(t, err)
	require.Len(t, comment.Files, 1)

	file := comment.Files[0]
	assert.Equal(t, "sofa.jpg", file.FileName)
	assert.Equal(t, int64(len(content)), file.FileSize)
	assert.Len(t, file.UUID, 36)
	assert.Equal(t, utils.HashBytes(content), file.Checksum)

	// Bytes landed on disk under "<uuid><original-name>"
	data, err := os.ReadFile(file.FilePath)
	require.NoError(t, err)
	assert.Equal(t, content, data)
	assert.Contains(t, file.FilePath, file.UUID+"sofa.jpg")
}

func TestCommentServiceCreateRejectsBadFileType(t *testing.T) {
	svc, _ := newCommentService(t)
	db := svc.db

	user := createTestUser(t, db, "reviewer@example.com")
	_, product := createTestCatalog(t, db)
	option := createTestOption(t, db, product.ID, "그레이", 0, 5)

	header := makeFileHeader(t, "malware.exe", []byte("nope"))

	_, err := svc.Create(user.ID, option.ID, &CreateCommentRequest{Content: "."}, []*multipart.FileHeader{header})
	assert.Error(t, err)
}

func TestCommentServiceFindByProductIDNoOptions(t *testing.T) {
	svc, _ := newCommentService(t)
	db := svc.db

	_, product := createTestCatalog(t, db)

	// No options means reviews are impossible: nil, not empty
	comments, err := svc.FindByProductID(product.ID)
	require.NoError(t, err)
	assert.Nil(t, comments)
}

func TestCommentServiceFindByProductIDNoComments(t *testing.T) {
	svc, _ := newCommentService(t)
	db := svc.db

	_, product := createTestCatalog(t, db)
	createTestOption(t, db, product.ID, "그레이", 0, 5)

	// Options exist but nothing written yet: empty, not nil
	comments, err := svc.FindByProductID(product.ID)
	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
}

func TestCommentServiceFindByProductIDSortedNewestFirst(t *testing.T) {
	svc, _ := newCommentService(t)
	db := svc.db

	user := createTestUser(t, db, "reviewer@example.com")
	_, product := createTestCatalog(t, db)
	option := createTestOption(t, db, product.ID, "그레이", 0, 5)

	first, err := svc.Create(user.ID, option.ID, &CreateCommentRequest{Content: "첫 번째"}, nil)
	require.NoError(t, err)
	second, err := svc.Create(user.ID, option.ID, &CreateCommentRequest{Content: "두 번째"}, nil)
	require.NoError(t, err)

	// Force distinct timestamps regardless of clock resolution
	require.NoError(t, db.Model(first).UpdateColumn("created_at", first.CreatedAt.Add(-time.Second)).Error)

	comments, err := svc.FindByProductID(product.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, second.ID, comments[0].ID)
	assert.Equal(t, first.ID, comments[1].ID)
}

func TestCommentServiceUpdateOnlyAuthor(t *testing.T) {
	svc, _ := newCommentService(t)
	db := svc.db

	author := createTestUser(t, db, "author@example.com")
	other := createTestUser(t, db, "other@example.com")
	_, product := createTestCatalog(t, db)
	option := createTestOption(t, db, product.ID, "그레이", 0, 5)

	comment, err := svc.Create(author.ID, option.ID, &CreateCommentRequest{Content: "원본"}, nil)
	require.NoError(t, err)

	updated, err := svc.Update(comment.ID, author.ID, &UpdateCommentRequest{Content: "수정됨"})
	require.NoError(t, err)
	assert.Equal(t, "수정됨", updated.Content)

	_, err = svc.Update(comment.ID, other.ID, &UpdateCommentRequest{Content: "해킹"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCommentServiceDeleteRemovesFiles(t *testing.T) {
	svc, _ := newCommentService(t)
	db := svc.db

	author := createTestUser(t, db, "author@example.com")
	other := createTestUser(t, db, "other@example.com")
	_, product := createTestCatalog(t, db)
	option := createTestOption(t, db, product.ID, "그레이", 0, 5)

	header := makeFileHeader(t, "photo.png", []byte("png bytes"))
	comment, err := svc.Create(author.ID, option.ID, &CreateCommentRequest{Content: "삭제 예정"}, []*multipart.FileHeader{header})
	require.NoError(t, err)
	path := comment.Files[0].FilePath

	// Non-author non-admin cannot delete
	assert.ErrorIs(t, svc.Delete(comment.ID, other.ID, false), ErrForbidden)

	// Admin can
	require.NoError(t, svc.Delete(comment.ID, other.ID, true))

	_, err = svc.FindByID(comment.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
