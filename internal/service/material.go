package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"materialapi/internal/converter"
	"materialapi/internal/model"
	"materialapi/internal/repository"
	"materialapi/internal/storage"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidID            = errors.New("invalid id")
	ErrNotFound             = errors.New("material not found")
	ErrTopicNotFound        = errors.New("topic not found")
	ErrMaterialTypeNotFound = errors.New("material type not found")
	ErrSourceNotFound       = errors.New("material file not found")
)

// Stored files with these extensions are converted to PDF before viewing.
var convertibleExtensions = map[string]struct{}{
	".doc":  {},
	".docx": {},
	".ppt":  {},
	".pptx": {},
	".txt":  {},
	".rtf":  {},
}

var tracer = otel.Tracer("materialapi/internal/service")

// Upload is an uploaded file as received from the client.
type Upload struct {
	Filename    string    `validate:"required"`
	ContentType string
	Size        int64
	Content     io.Reader `validate:"required"`
}

// CreateMaterialRequest describes a new material.
type CreateMaterialRequest struct {
	Name           string `validate:"required,max=255"`
	TopicID        string `validate:"required,uuid"`
	MaterialTypeID string `validate:"required,uuid"`
	Duration       int    `validate:"gte=0"`
	CreatedBy      string `validate:"required"`
	File           Upload
}

// UpdateMaterialRequest renames a material and replaces its file.
type UpdateMaterialRequest struct {
	ID         string `validate:"required"`
	Name       string `validate:"required,max=255"`
	ModifiedBy string `validate:"required"`
	File       Upload
}

// MaterialService defines the course material use cases.
type MaterialService interface {
	// Create stores the upload and inserts the record. A (name, topic) pair that
	// already exists yields (nil, nil) and nothing is written.
	Create(ctx context.Context, origin Origin, req CreateMaterialRequest) (*model.MaterialView, error)

	// SoftDelete marks a material inactive and reports whether a row changed.
	SoftDelete(ctx context.Context, id string) (bool, error)

	// ListByTopicAndType returns active materials of a topic and type.
	ListByTopicAndType(ctx context.Context, origin Origin, topicID, materialTypeID string) ([]model.MaterialView, error)

	// GetByNameAndTopic returns the material named name under a topic.
	GetByNameAndTopic(ctx context.Context, origin Origin, name, topicID string) (*model.MaterialView, error)

	// Update always writes the new file, then renames and repoints the record.
	// The previous file is left in storage.
	Update(ctx context.Context, req UpdateMaterialRequest) (bool, error)

	// View returns a material for in-browser viewing, converting office and
	// text formats to PDF on every call.
	View(ctx context.Context, origin Origin, id string) (*model.MaterialView, error)
}

type materialService struct {
	store     storage.Storage
	materials repository.MaterialRepository
	topics    repository.TopicRepository
	types     repository.MaterialTypeRepository
	conv      converter.Converter

	validate *validator.Validate
	logger   *zap.Logger
	workDir  string
	now      func() time.Time
	newID    func() string
}

type Option func(*materialService)

func WithLogger(l *zap.Logger) Option {
	return func(s *materialService) { s.logger = l }
}

func WithValidator(v *validator.Validate) Option {
	return func(s *materialService) { s.validate = v }
}

// WithWorkDir sets the parent directory for per-conversion scratch dirs.
func WithWorkDir(dir string) Option {
	return func(s *materialService) { s.workDir = dir }
}

func WithClock(now func() time.Time) Option {
	return func(s *materialService) { s.now = now }
}

// NewMaterialService constructs a MaterialService.
func NewMaterialService(
	store storage.Storage,
	materials repository.MaterialRepository,
	topics repository.TopicRepository,
	types repository.MaterialTypeRepository,
	conv converter.Converter,
	opts ...Option,
) MaterialService {
	s := &materialService{
		store:     store,
		materials: materials,
		topics:    topics,
		types:     types,
		conv:      conv,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.validate == nil {
		s.validate = validator.New()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

func (s *materialService) Create(ctx context.Context, origin Origin, req CreateMaterialRequest) (view *model.MaterialView, err error) {
	ctx, span := tracer.Start(ctx, "MaterialService.Create")
	defer func() { finishSpan(span, err) }()

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	topic, err := s.topic(ctx, req.TopicID)
	if err != nil {
		return nil, err
	}
	materialType, err := s.materialType(ctx, req.MaterialTypeID)
	if err != nil {
		return nil, err
	}

	exists, err := s.materials.ExistsByNameAndTopic(ctx, req.Name, topic.ID)
	if err != nil {
		return nil, fmt.Errorf("check duplicate: %w", err)
	}
	if exists {
		s.logger.Info("material_duplicate_skipped",
			zap.String("name", req.Name),
			zap.String("topic_id", topic.ID),
		)
		return nil, nil
	}

	fileName, err := s.saveUpload(ctx, req.File)
	if err != nil {
		return nil, err
	}

	m := &model.Material{
		ID:             s.newID(),
		Name:           req.Name,
		TopicID:        topic.ID,
		MaterialTypeID: materialType.ID,
		FilePath:       fileName,
		Duration:       req.Duration,
		IsActive:       true,
		IsAvailable:    true,
		CreatedBy:      req.CreatedBy,
		CreatedAt:      s.now(),
		Topic:          topic,
		MaterialType:   materialType,
	}
	if err := s.materials.Create(ctx, m); err != nil {
		if delErr := s.store.Delete(ctx, materialKey(fileName)); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	span.SetAttributes(attribute.String("material.id", m.ID))
	s.logger.Info("material_created",
		zap.String("material_id", m.ID),
		zap.String("topic_id", m.TopicID),
		zap.String("file", fileName),
	)
	return toView(m, origin.PublicURL(m.FilePath)), nil
}

func (s *materialService) SoftDelete(ctx context.Context, id string) (deleted bool, err error) {
	ctx, span := tracer.Start(ctx, "MaterialService.SoftDelete", trace.WithAttributes(attribute.String("material.id", id)))
	defer func() { finishSpan(span, err) }()

	m, err := s.find(ctx, id)
	if err != nil {
		return false, err
	}
	m.IsActive = false
	n, err := s.materials.Update(ctx, m)
	if err != nil {
		return false, fmt.Errorf("soft delete: %w", err)
	}

	s.logger.Info("material_soft_deleted", zap.String("material_id", id), zap.Int64("rows", n))
	return n > 0, nil
}

func (s *materialService) ListByTopicAndType(ctx context.Context, origin Origin, topicID, materialTypeID string) (views []model.MaterialView, err error) {
	ctx, span := tracer.Start(ctx, "MaterialService.ListByTopicAndType")
	defer func() { finishSpan(span, err) }()

	topic, err := s.topic(ctx, topicID)
	if err != nil {
		return nil, err
	}
	materialType, err := s.materialType(ctx, materialTypeID)
	if err != nil {
		return nil, err
	}

	items, err := s.materials.ListByTopicAndType(ctx, topic.ID, materialType.ID)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}

	views = make([]model.MaterialView, 0, len(items))
	for i := range items {
		m := &items[i]
		if m.Topic == nil {
			m.Topic = topic
		}
		if m.MaterialType == nil {
			m.MaterialType = materialType
		}
		views = append(views, *toView(m, origin.PublicURL(m.FilePath)))
	}
	return views, nil
}

func (s *materialService) GetByNameAndTopic(ctx context.Context, origin Origin, name, topicID string) (view *model.MaterialView, err error) {
	ctx, span := tracer.Start(ctx, "MaterialService.GetByNameAndTopic")
	defer func() { finishSpan(span, err) }()

	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	topic, err := s.topic(ctx, topicID)
	if err != nil {
		return nil, err
	}

	m, err := s.materials.FindByNameAndTopic(ctx, name, topic.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if m.Topic == nil {
		m.Topic = topic
	}
	return toView(m, origin.PublicURL(m.FilePath)), nil
}

func (s *materialService) Update(ctx context.Context, req UpdateMaterialRequest) (updated bool, err error) {
	ctx, span := tracer.Start(ctx, "MaterialService.Update", trace.WithAttributes(attribute.String("material.id", req.ID)))
	defer func() { finishSpan(span, err) }()

	if err := s.validate.Struct(req); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	m, err := s.find(ctx, req.ID)
	if err != nil {
		return false, err
	}

	fileName, err := s.saveUpload(ctx, req.File)
	if err != nil {
		return false, err
	}

	// TODO: remove the superseded upload (and its .pdf sibling) once no record references it.
	previous := m.FilePath
	now := s.now()
	modifiedBy := req.ModifiedBy
	m.Name = req.Name
	m.FilePath = fileName
	m.ModifiedBy = &modifiedBy
	m.ModifiedAt = &now

	n, err := s.materials.Update(ctx, m)
	if err != nil {
		if delErr := s.store.Delete(ctx, materialKey(fileName)); delErr != nil {
			return false, fmt.Errorf("db update failed: %v; rollback delete failed: %v", err, delErr)
		}
		return false, fmt.Errorf("db update failed: %w", err)
	}

	s.logger.Info("material_updated",
		zap.String("material_id", m.ID),
		zap.String("file", fileName),
		zap.String("previous_file", previous),
		zap.Int64("rows", n),
	)
	return n > 0, nil
}

func (s *materialService) View(ctx context.Context, origin Origin, id string) (view *model.MaterialView, err error) {
	ctx, span := tracer.Start(ctx, "MaterialService.View", trace.WithAttributes(attribute.String("material.id", id)))
	defer func() { finishSpan(span, err) }()

	m, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	key := materialKey(m.FilePath)
	if isConvertible(m.FilePath) {
		span.SetAttributes(attribute.Bool("material.converted", true))
		key, err = s.convertToPDF(ctx, key)
		if err != nil {
			return nil, err
		}
	}
	return toView(m, origin.ViewerURL(key)), nil
}

// convertToPDF stages key into a scratch dir, converts it and stores the PDF
// next to the source, overwriting any earlier conversion. Returns the PDF key.
func (s *materialService) convertToPDF(ctx context.Context, key string) (string, error) {
	rc, _, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return "", fmt.Errorf("%w: %s", ErrSourceNotFound, key)
		}
		return "", fmt.Errorf("read source: %w", err)
	}
	defer rc.Close()

	dir, err := os.MkdirTemp(s.workDir, "convert-*")
	if err != nil {
		return "", fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, path.Base(key))
	if err := copyToFile(src, rc); err != nil {
		return "", fmt.Errorf("stage source: %w", err)
	}

	out, err := s.conv.ToPDF(ctx, src, dir)
	if err != nil {
		if errors.Is(err, converter.ErrSourceNotFound) {
			return "", fmt.Errorf("%w: %s", ErrSourceNotFound, key)
		}
		return "", fmt.Errorf("convert %s: %w", path.Base(key), err)
	}

	f, err := os.Open(out)
	if err != nil {
		return "", fmt.Errorf("open converted pdf: %w", err)
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat converted pdf: %w", err)
	}

	pdfKey := strings.TrimSuffix(key, path.Ext(key)) + ".pdf"
	if _, err := s.store.Put(ctx, pdfKey, f, storage.PutObjectOptions{
		Size:        st.Size(),
		ContentType: "application/pdf",
	}); err != nil {
		return "", fmt.Errorf("store converted pdf: %w", err)
	}

	s.logger.Info("material_converted", zap.String("source", key), zap.String("pdf", pdfKey))
	return pdfKey, nil
}

func (s *materialService) saveUpload(ctx context.Context, up Upload) (string, error) {
	name := uniqueFileName(s.newID(), up.Filename)
	size := up.Size
	if size <= 0 {
		size = -1
	}
	if _, err := s.store.Put(ctx, materialKey(name), up.Content, storage.PutObjectOptions{
		Size:        size,
		ContentType: up.ContentType,
		Metadata:    map[string]string{"original-filename": up.Filename},
	}); err != nil {
		return "", fmt.Errorf("upload to storage: %w", err)
	}
	return name, nil
}

func (s *materialService) find(ctx context.Context, id string) (*model.Material, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	m, err := s.materials.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *materialService) topic(ctx context.Context, id string) (*model.Topic, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: topic %q", ErrInvalidID, id)
	}
	t, err := s.topics.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTopicNotFound
		}
		return nil, fmt.Errorf("find topic: %w", err)
	}
	return t, nil
}

func (s *materialService) materialType(ctx context.Context, id string) (*model.MaterialType, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: material type %q", ErrInvalidID, id)
	}
	mt, err := s.types.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMaterialTypeNotFound
		}
		return nil, fmt.Errorf("find material type: %w", err)
	}
	return mt, nil
}

func toView(m *model.Material, fileURL string) *model.MaterialView {
	v := &model.MaterialView{
		MaterialID:  m.ID,
		Name:        m.Name,
		FilePath:    fileURL,
		Duration:    m.Duration,
		IsActive:    m.IsActive,
		IsAvailable: m.IsAvailable,
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
		ModifiedAt:  m.ModifiedAt,
		ModifiedBy:  m.ModifiedBy,
	}
	if m.Topic != nil {
		v.TopicName = m.Topic.Name
	}
	if m.MaterialType != nil {
		v.MaterialType = m.MaterialType.Type
	}
	return v
}

// uniqueFileName builds "<id>_<original base name>".
func uniqueFileName(id, original string) string {
	base := path.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == "/" || base == ".." {
		base = "upload"
	}
	return id + "_" + base
}

func isConvertible(fileName string) bool {
	_, ok := convertibleExtensions[strings.ToLower(path.Ext(fileName))]
	return ok
}

func copyToFile(dst string, r io.Reader) error {
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
