package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	convMocks "materialapi/internal/converter/mocks"
	"materialapi/internal/model"
	repoMocks "materialapi/internal/repository/mocks"
	"materialapi/internal/repository/postgres"
	"materialapi/internal/storage"
	storeMocks "materialapi/internal/storage/mocks"
)

const (
	topicID    = "11111111-1111-4111-8111-111111111111"
	typeID     = "22222222-2222-4222-8222-222222222222"
	materialID = "33333333-3333-4333-8333-333333333333"
)

var (
	fixedNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	origin   = Origin{Scheme: "https", Host: "lms.example.com", PathBase: "/app"}
)

type fixture struct {
	svc       *materialService
	store     *storeMocks.MockStorage
	materials *repoMocks.MockMaterialRepository
	topics    *repoMocks.MockTopicRepository
	types     *repoMocks.MockMaterialTypeRepository
	conv      *convMocks.MockConverter
	logs      *observer.ObservedLogs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	f := &fixture{
		store:     new(storeMocks.MockStorage),
		materials: new(repoMocks.MockMaterialRepository),
		topics:    new(repoMocks.MockTopicRepository),
		types:     new(repoMocks.MockMaterialTypeRepository),
		conv:      new(convMocks.MockConverter),
		logs:      logs,
	}
	f.svc = NewMaterialService(f.store, f.materials, f.topics, f.types, f.conv,
		WithLogger(zap.New(core)),
		WithWorkDir(t.TempDir()),
		WithClock(func() time.Time { return fixedNow }),
	).(*materialService)

	n := 0
	f.svc.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	f.store.AssertExpectations(t)
	f.materials.AssertExpectations(t)
	f.topics.AssertExpectations(t)
	f.types.AssertExpectations(t)
	f.conv.AssertExpectations(t)
}

func (f *fixture) expectTopicAndType() {
	f.topics.On("FindByID", mock.Anything, topicID).
		Return(&model.Topic{ID: topicID, Name: "Algebra", IsActive: true}, nil)
	f.types.On("FindByID", mock.Anything, typeID).
		Return(&model.MaterialType{ID: typeID, Type: "Document"}, nil)
}

func createRequest(name, filename string, r io.Reader, size int64) CreateMaterialRequest {
	return CreateMaterialRequest{
		Name:           name,
		TopicID:        topicID,
		MaterialTypeID: typeID,
		Duration:       30,
		CreatedBy:      "alice",
		File:           Upload{Filename: filename, ContentType: "application/octet-stream", Size: size, Content: r},
	}
}

func TestMaterialService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("stores file and record", func(t *testing.T) {
		f := newFixture(t)
		f.expectTopicAndType()
		r := strings.NewReader("doc")
		f.materials.On("ExistsByNameAndTopic", mock.Anything, "Week 1", topicID).Return(false, nil)
		f.store.On("Put", mock.Anything, "CourseMaterial/id-1_lecture.docx", r, storage.PutObjectOptions{
			Size:        3,
			ContentType: "application/octet-stream",
			Metadata:    map[string]string{"original-filename": "lecture.docx"},
		}).Return(storage.ObjectInfo{Key: "CourseMaterial/id-1_lecture.docx"}, nil)
		f.materials.On("Create", mock.Anything, mock.MatchedBy(func(m *model.Material) bool {
			return m.ID == "id-2" &&
				m.FilePath == "id-1_lecture.docx" &&
				m.IsActive && m.IsAvailable &&
				m.CreatedAt.Equal(fixedNow) &&
				m.ModifiedBy == nil
		})).Return(nil)

		view, err := f.svc.Create(ctx, origin, createRequest("Week 1", "lecture.docx", r, 3))

		require.NoError(t, err)
		require.NotNil(t, view)
		assert.Equal(t, "id-2", view.MaterialID)
		assert.Equal(t, "Algebra", view.TopicName)
		assert.Equal(t, "Document", view.MaterialType)
		assert.Equal(t, 30, view.Duration)
		assert.Equal(t, "https://lms.example.com/app/wwwroot/CourseMaterial/id-1_lecture.docx", view.FilePath)
		assert.Equal(t, 1, f.logs.FilterMessage("material_created").Len())
		f.assertExpectations(t)
	})

	t.Run("duplicate name in topic writes nothing", func(t *testing.T) {
		f := newFixture(t)
		f.expectTopicAndType()
		f.materials.On("ExistsByNameAndTopic", mock.Anything, "Week 1", topicID).Return(true, nil)

		view, err := f.svc.Create(ctx, origin, createRequest("Week 1", "lecture.docx", strings.NewReader("doc"), 3))

		assert.NoError(t, err)
		assert.Nil(t, view)
		f.store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.materials.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		assert.Equal(t, 1, f.logs.FilterMessage("material_duplicate_skipped").Len())
	})

	t.Run("soft-deleted material with the same name still blocks", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
		require.NoError(t, err)
		defer db.Close()

		f := newFixture(t)
		f.svc.materials = postgres.NewMaterialPostgres(db)
		f.expectTopicAndType()
		// The only row for (Week 1, topic) has is_active = false.
		sqlMock.ExpectQuery(`SELECT EXISTS (SELECT 1 FROM materials WHERE name = $1 AND topic_id = $2)`).
			WithArgs("Week 1", topicID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		view, err := f.svc.Create(ctx, origin, createRequest("Week 1", "lecture.docx", strings.NewReader("doc"), 3))

		assert.NoError(t, err)
		assert.Nil(t, view)
		f.store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid input", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(ctx, origin, createRequest("", "lecture.docx", strings.NewReader("doc"), 3))
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = f.svc.Create(ctx, origin, createRequest("Week 1", "lecture.docx", nil, 0))
		assert.ErrorIs(t, err, ErrInvalidInput)

		req := createRequest("Week 1", "lecture.docx", strings.NewReader("doc"), 3)
		req.Duration = -1
		_, err = f.svc.Create(ctx, origin, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
		f.assertExpectations(t)
	})

	t.Run("unknown topic", func(t *testing.T) {
		f := newFixture(t)
		f.topics.On("FindByID", mock.Anything, topicID).Return(nil, sql.ErrNoRows)

		_, err := f.svc.Create(ctx, origin, createRequest("Week 1", "a.mp4", strings.NewReader("v"), 1))

		assert.ErrorIs(t, err, ErrTopicNotFound)
		f.assertExpectations(t)
	})

	t.Run("unknown material type", func(t *testing.T) {
		f := newFixture(t)
		f.topics.On("FindByID", mock.Anything, topicID).Return(&model.Topic{ID: topicID}, nil)
		f.types.On("FindByID", mock.Anything, typeID).Return(nil, sql.ErrNoRows)

		_, err := f.svc.Create(ctx, origin, createRequest("Week 1", "a.mp4", strings.NewReader("v"), 1))

		assert.ErrorIs(t, err, ErrMaterialTypeNotFound)
		f.assertExpectations(t)
	})

	t.Run("storage error", func(t *testing.T) {
		f := newFixture(t)
		f.expectTopicAndType()
		f.materials.On("ExistsByNameAndTopic", mock.Anything, "Week 1", topicID).Return(false, nil)
		f.store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, errors.New("storage fail"))

		_, err := f.svc.Create(ctx, origin, createRequest("Week 1", "a.mp4", strings.NewReader("v"), 1))

		assert.EqualError(t, err, "upload to storage: storage fail")
		f.materials.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("db error rolls back the file", func(t *testing.T) {
		f := newFixture(t)
		f.expectTopicAndType()
		f.materials.On("ExistsByNameAndTopic", mock.Anything, "Week 1", topicID).Return(false, nil)
		f.store.On("Put", mock.Anything, "CourseMaterial/id-1_a.mp4", mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, nil)
		f.materials.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))
		f.store.On("Delete", mock.Anything, "CourseMaterial/id-1_a.mp4").Return(nil)

		_, err := f.svc.Create(ctx, origin, createRequest("Week 1", "a.mp4", strings.NewReader("v"), 1))

		assert.EqualError(t, err, "db save failed: db down")
		f.assertExpectations(t)
	})

	t.Run("db error and rollback error", func(t *testing.T) {
		f := newFixture(t)
		f.expectTopicAndType()
		f.materials.On("ExistsByNameAndTopic", mock.Anything, "Week 1", topicID).Return(false, nil)
		f.store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil)
		f.materials.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))
		f.store.On("Delete", mock.Anything, mock.Anything).Return(errors.New("delete fail"))

		_, err := f.svc.Create(ctx, origin, createRequest("Week 1", "a.mp4", strings.NewReader("v"), 1))

		assert.EqualError(t, err, "db save failed: db down; rollback delete failed: delete fail")
	})
}

func TestMaterialService_SoftDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("marks inactive", func(t *testing.T) {
		f := newFixture(t)
		f.materials.On("FindByID", mock.Anything, materialID).
			Return(&model.Material{ID: materialID, IsActive: true, IsAvailable: true}, nil)
		f.materials.On("Update", mock.Anything, mock.MatchedBy(func(m *model.Material) bool {
			return m.ID == materialID && !m.IsActive && m.IsAvailable
		})).Return(int64(1), nil)

		deleted, err := f.svc.SoftDelete(ctx, materialID)

		require.NoError(t, err)
		assert.True(t, deleted)
		f.assertExpectations(t)
	})

	t.Run("no rows changed", func(t *testing.T) {
		f := newFixture(t)
		f.materials.On("FindByID", mock.Anything, materialID).Return(&model.Material{ID: materialID}, nil)
		f.materials.On("Update", mock.Anything, mock.Anything).Return(int64(0), nil)

		deleted, err := f.svc.SoftDelete(ctx, materialID)

		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("malformed id", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.SoftDelete(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, ErrInvalidID)
		f.assertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.materials.On("FindByID", mock.Anything, materialID).Return(nil, sql.ErrNoRows)

		_, err := f.svc.SoftDelete(ctx, materialID)

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMaterialService_ListByTopicAndType(t *testing.T) {
	ctx := context.Background()

	t.Run("maps rows to views", func(t *testing.T) {
		f := newFixture(t)
		f.expectTopicAndType()
		f.materials.On("ListByTopicAndType", mock.Anything, topicID, typeID).Return([]model.Material{
			{ID: "m1", Name: "Week 1", FilePath: "a_week1.pdf", IsActive: true},
			{ID: "m2", Name: "Week 2", FilePath: "b_week 2.docx", IsActive: true,
				Topic: &model.Topic{Name: "Joined"}, MaterialType: &model.MaterialType{Type: "Presentation"}},
		}, nil)

		views, err := f.svc.ListByTopicAndType(ctx, origin, topicID, typeID)

		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, "Algebra", views[0].TopicName)
		assert.Equal(t, "Document", views[0].MaterialType)
		assert.Equal(t, "https://lms.example.com/app/wwwroot/CourseMaterial/a_week1.pdf", views[0].FilePath)
		assert.Equal(t, "Joined", views[1].TopicName)
		assert.Equal(t, "Presentation", views[1].MaterialType)
		assert.Equal(t, "https://lms.example.com/app/wwwroot/CourseMaterial/b_week%202.docx", views[1].FilePath)
	})

	t.Run("empty result is an empty slice", func(t *testing.T) {
		f := newFixture(t)
		f.expectTopicAndType()
		f.materials.On("ListByTopicAndType", mock.Anything, topicID, typeID).Return([]model.Material{}, nil)

		views, err := f.svc.ListByTopicAndType(ctx, origin, topicID, typeID)

		require.NoError(t, err)
		assert.NotNil(t, views)
		assert.Empty(t, views)
	})

	t.Run("malformed topic id", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.ListByTopicAndType(ctx, origin, "x", typeID)

		assert.ErrorIs(t, err, ErrInvalidID)
	})

	t.Run("repository error", func(t *testing.T) {
		f := newFixture(t)
		f.expectTopicAndType()
		f.materials.On("ListByTopicAndType", mock.Anything, topicID, typeID).Return(nil, errors.New("db fail"))

		_, err := f.svc.ListByTopicAndType(ctx, origin, topicID, typeID)

		assert.EqualError(t, err, "list materials: db fail")
	})
}

func TestMaterialService_GetByNameAndTopic(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		f := newFixture(t)
		f.topics.On("FindByID", mock.Anything, topicID).Return(&model.Topic{ID: topicID, Name: "Algebra"}, nil)
		f.materials.On("FindByNameAndTopic", mock.Anything, "Week 1", topicID).
			Return(&model.Material{ID: materialID, Name: "Week 1", FilePath: "x_w1.pptx", IsActive: false}, nil)

		view, err := f.svc.GetByNameAndTopic(ctx, origin, "Week 1", topicID)

		require.NoError(t, err)
		assert.Equal(t, materialID, view.MaterialID)
		assert.Equal(t, "Algebra", view.TopicName)
		assert.False(t, view.IsActive)
		assert.Equal(t, "https://lms.example.com/app/wwwroot/CourseMaterial/x_w1.pptx", view.FilePath)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.topics.On("FindByID", mock.Anything, topicID).Return(&model.Topic{ID: topicID}, nil)
		f.materials.On("FindByNameAndTopic", mock.Anything, "Nope", topicID).Return(nil, sql.ErrNoRows)

		_, err := f.svc.GetByNameAndTopic(ctx, origin, "Nope", topicID)

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("blank name", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.GetByNameAndTopic(ctx, origin, "  ", topicID)

		assert.ErrorIs(t, err, ErrInvalidInput)
		f.assertExpectations(t)
	})
}

func TestMaterialService_Update(t *testing.T) {
	ctx := context.Background()

	updateRequest := func(r io.Reader) UpdateMaterialRequest {
		return UpdateMaterialRequest{
			ID:         materialID,
			Name:       "Week 1 (revised)",
			ModifiedBy: "bob",
			File:       Upload{Filename: "lecture.docx", ContentType: "application/msword", Size: 3, Content: r},
		}
	}

	t.Run("always writes a new file and repoints the record", func(t *testing.T) {
		f := newFixture(t)
		// Same bytes as the file already stored under old_lecture.docx.
		r := strings.NewReader("doc")
		f.materials.On("FindByID", mock.Anything, materialID).Return(&model.Material{
			ID: materialID, Name: "Week 1", FilePath: "old_lecture.docx", IsActive: true, CreatedBy: "alice",
		}, nil)
		f.store.On("Put", mock.Anything, "CourseMaterial/id-1_lecture.docx", r, mock.Anything).
			Return(storage.ObjectInfo{}, nil)
		f.materials.On("Update", mock.Anything, mock.MatchedBy(func(m *model.Material) bool {
			return m.Name == "Week 1 (revised)" &&
				m.FilePath == "id-1_lecture.docx" &&
				m.ModifiedBy != nil && *m.ModifiedBy == "bob" &&
				m.ModifiedAt != nil && m.ModifiedAt.Equal(fixedNow) &&
				m.CreatedBy == "alice"
		})).Return(int64(1), nil)

		updated, err := f.svc.Update(ctx, updateRequest(r))

		require.NoError(t, err)
		assert.True(t, updated)
		f.store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("byte-identical upload is stored under a fresh key", func(t *testing.T) {
		store, err := storage.NewLocal(t.TempDir())
		require.NoError(t, err)
		_, err = store.Put(ctx, "CourseMaterial/old_lecture.docx", strings.NewReader("doc"), storage.PutObjectOptions{Size: 3})
		require.NoError(t, err)

		f := newFixture(t)
		f.svc.store = store
		f.materials.On("FindByID", mock.Anything, materialID).Return(&model.Material{
			ID: materialID, Name: "Week 1", FilePath: "old_lecture.docx", IsActive: true, CreatedBy: "alice",
		}, nil)
		var saved *model.Material
		f.materials.On("Update", mock.Anything, mock.AnythingOfType("*model.Material")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*model.Material) }).
			Return(int64(1), nil)

		updated, err := f.svc.Update(ctx, updateRequest(strings.NewReader("doc")))

		require.NoError(t, err)
		assert.True(t, updated)
		require.NotNil(t, saved)
		assert.Equal(t, "id-1_lecture.docx", saved.FilePath)
		assert.NotEqual(t, "old_lecture.docx", saved.FilePath)
		for _, key := range []string{"CourseMaterial/old_lecture.docx", "CourseMaterial/id-1_lecture.docx"} {
			rc, _, err := store.Get(ctx, key)
			require.NoError(t, err, key)
			b, err := io.ReadAll(rc)
			rc.Close()
			require.NoError(t, err)
			assert.Equal(t, "doc", string(b), key)
		}
	})

	t.Run("not found writes nothing", func(t *testing.T) {
		f := newFixture(t)
		f.materials.On("FindByID", mock.Anything, materialID).Return(nil, sql.ErrNoRows)

		_, err := f.svc.Update(ctx, updateRequest(strings.NewReader("new")))

		assert.ErrorIs(t, err, ErrNotFound)
		f.store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing modifier", func(t *testing.T) {
		f := newFixture(t)
		req := updateRequest(strings.NewReader("new"))
		req.ModifiedBy = ""

		_, err := f.svc.Update(ctx, req)

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("db error removes the new file", func(t *testing.T) {
		f := newFixture(t)
		f.materials.On("FindByID", mock.Anything, materialID).Return(&model.Material{ID: materialID}, nil)
		f.store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil)
		f.materials.On("Update", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))
		f.store.On("Delete", mock.Anything, "CourseMaterial/id-1_lecture.docx").Return(nil)

		_, err := f.svc.Update(ctx, updateRequest(strings.NewReader("new")))

		assert.EqualError(t, err, "db update failed: db down")
		f.assertExpectations(t)
	})
}

func TestMaterialService_View(t *testing.T) {
	ctx := context.Background()
	local := Origin{Scheme: "http", Host: "localhost:8080"}

	t.Run("office document is converted", func(t *testing.T) {
		f := newFixture(t)
		f.materials.On("FindByID", mock.Anything, materialID).
			Return(&model.Material{ID: materialID, FilePath: "abc_lecture.docx", IsActive: true}, nil)
		f.store.On("Get", mock.Anything, "CourseMaterial/abc_lecture.docx").
			Return(io.NopCloser(strings.NewReader("docx-bytes")), storage.ObjectInfo{}, nil)

		var staged string
		f.conv.On("ToPDF", mock.Anything, mock.Anything, mock.Anything).
			Return(func(_ context.Context, src, outDir string) string {
				b, err := os.ReadFile(src)
				require.NoError(t, err)
				staged = string(b)
				assert.Equal(t, "abc_lecture.docx", filepath.Base(src))
				out := filepath.Join(outDir, "abc_lecture.pdf")
				require.NoError(t, os.WriteFile(out, []byte("%PDF-1.4"), 0o644))
				return out
			}, nil)
		f.store.On("Put", mock.Anything, "CourseMaterial/abc_lecture.pdf", mock.Anything,
			mock.MatchedBy(func(o storage.PutObjectOptions) bool {
				return o.ContentType == "application/pdf" && o.Size == int64(len("%PDF-1.4"))
			})).Return(storage.ObjectInfo{}, nil)

		view, err := f.svc.View(ctx, local, materialID)

		require.NoError(t, err)
		assert.Equal(t, "docx-bytes", staged)
		assert.Equal(t, "http://localhost:8080/CourseMaterial/abc_lecture.pdf", view.FilePath)
		f.assertExpectations(t)

		entries, err := os.ReadDir(f.svc.workDir)
		require.NoError(t, err)
		assert.Empty(t, entries, "scratch dir is removed")
	})

	t.Run("video is returned as stored", func(t *testing.T) {
		f := newFixture(t)
		f.materials.On("FindByID", mock.Anything, materialID).
			Return(&model.Material{ID: materialID, FilePath: "abc_clip.mp4"}, nil)

		view, err := f.svc.View(ctx, local, materialID)

		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/CourseMaterial/abc_clip.mp4", view.FilePath)
		f.store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
		f.conv.AssertNotCalled(t, "ToPDF", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing source file", func(t *testing.T) {
		f := newFixture(t)
		f.materials.On("FindByID", mock.Anything, materialID).
			Return(&model.Material{ID: materialID, FilePath: "abc_notes.txt"}, nil)
		f.store.On("Get", mock.Anything, "CourseMaterial/abc_notes.txt").
			Return(nil, storage.ObjectInfo{}, fmt.Errorf("open: %w", storage.ErrObjectNotFound))

		_, err := f.svc.View(ctx, local, materialID)

		assert.ErrorIs(t, err, ErrSourceNotFound)
	})

	t.Run("conversion failure", func(t *testing.T) {
		f := newFixture(t)
		f.materials.On("FindByID", mock.Anything, materialID).
			Return(&model.Material{ID: materialID, FilePath: "abc_deck.PPTX"}, nil)
		f.store.On("Get", mock.Anything, "CourseMaterial/abc_deck.PPTX").
			Return(io.NopCloser(strings.NewReader("pptx")), storage.ObjectInfo{}, nil)
		f.conv.On("ToPDF", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("soffice crashed"))

		_, err := f.svc.View(ctx, local, materialID)

		assert.EqualError(t, err, "convert abc_deck.PPTX: soffice crashed")
		f.store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.materials.On("FindByID", mock.Anything, materialID).Return(nil, sql.ErrNoRows)

		_, err := f.svc.View(ctx, local, materialID)

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUniqueFileName(t *testing.T) {
	assert.Equal(t, "id_lecture.docx", uniqueFileName("id", "lecture.docx"))
	assert.Equal(t, "id_lecture.docx", uniqueFileName("id", `C:\Users\me\lecture.docx`))
	assert.Equal(t, "id_passwd", uniqueFileName("id", "../../etc/passwd"))
	assert.Equal(t, "id_upload", uniqueFileName("id", ".."))
}

func TestOrigin(t *testing.T) {
	o := Origin{Scheme: "https", Host: "h:8443", PathBase: "/lms/"}

	assert.Equal(t, "https://h:8443/lms/wwwroot/CourseMaterial/a%20b.pdf", o.PublicURL("a b.pdf"))
	assert.Equal(t, "https://h:8443/lms/CourseMaterial/a%20b.pdf", o.ViewerURL("CourseMaterial/a b.pdf"))
	assert.Equal(t, "http://h/CourseMaterial/x.mp4", Origin{Host: "h"}.ViewerURL("/CourseMaterial/x.mp4"))
}
