package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"catalog-backend/internal/domains/book/model"
	"catalog-backend/internal/shared/apperr"
	"catalog-backend/internal/shared/entity"
	"catalog-backend/internal/shared/utils"
	"catalog-backend/pkg/cache"
	"catalog-backend/pkg/fieldcipher"
	"catalog-backend/pkg/logger"
	"catalog-backend/pkg/store"
)

// DefaultCacheTTL - thời gian sống của book row trong cache
const DefaultCacheTTL = 10 * time.Minute

// BookService - Implements ServiceInterface
type BookService struct {
	newUoW    UnitOfWorkFactory
	cipher    *fieldcipher.Cipher
	presenter *fieldcipher.Presenter
	cache     cache.Cache
	cacheTTL  time.Duration
}

// NewService - Constructor with DI. cache có thể nil (chạy không có Redis).
func NewService(newUoW UnitOfWorkFactory, cipher *fieldcipher.Cipher, c cache.Cache, cacheTTL time.Duration) ServiceInterface {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &BookService{
		newUoW:    newUoW,
		cipher:    cipher,
		presenter: fieldcipher.NewPresenter(cipher),
		cache:     c,
		cacheTTL:  cacheTTL,
	}
}

// CreateBook thêm book mới.
//  1. Validate request
//  2. Mã hoá ISBN, ISBN trùng (kể cả book đã xoá) → Conflict
//  3. Stage insert + Save
//  4. Trả AdminView với ISBN đã mask
func (s *BookService) CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.AdminView, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Wrap(apperr.KindBadRequest, err, utils.FirstValidationMessage(err, model.CreateFieldOrder...))
	}

	isbn := req.NormalizedISBN()
	encrypted, err := s.cipher.Encrypt(isbn)
	if err != nil {
		return nil, apperr.Configuration(fmt.Errorf("encrypt isbn: %w", err))
	}

	uow := s.newUoW()
	exists, err := uow.Books().ExistsByISBN(ctx, encrypted)
	if err != nil {
		return nil, err
	}
	if exists {
		logger.Info("Book rejected: duplicate ISBN", map[string]interface{}{
			"isbn": fieldcipher.Mask(isbn),
		})
		return nil, apperr.Wrap(apperr.KindConflict, model.ErrISBNAlreadyExists, model.MsgISBNAlreadyExists)
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	book := &model.Book{
		Common:      entity.NewCommon(),
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		PublishDate: req.PublishDate.Time,
		IsbnNumber:  encrypted,
		Publisher:   req.Publisher,
		Location:    req.Location,
		Language:    req.Language,
		Genre:       req.Genre,
		PageCount:   req.PageCount,
		Price:       req.Price,
		IsAvailable: available,
	}
	if err := uow.Books().Create(book); err != nil {
		return nil, err
	}
	if err := uow.Save(ctx); err != nil {
		// unique index trên isbn_number bắt race giữa hai request
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, apperr.Wrap(apperr.KindConflict, err, model.MsgISBNAlreadyExists)
		}
		return nil, err
	}

	logger.Info("Book created", map[string]interface{}{
		"book_id": book.ID.String(),
		"isbn":    fieldcipher.Mask(isbn),
	})

	view := model.ToAdminView(book)
	if err := s.presenter.Present(view); err != nil {
		return nil, apperr.Configuration(err)
	}
	return view, nil
}

// ListBooks - active books, lọc theo genre/author, phân trang Skip/Take
func (s *BookService) ListBooks(ctx context.Context, role string, req model.ListBooksRequest) ([]model.View, error) {
	req = req.WithDefaults()
	if err := req.Validate(); err != nil {
		return nil, apperr.Wrap(apperr.KindBadRequest, err, utils.FirstValidationMessage(err, model.ListFieldOrder...))
	}

	books, err := s.newUoW().Books().ListActive(ctx)
	if err != nil {
		return nil, err
	}

	matched := books[:0]
	for _, b := range books {
		if b.MatchesFilter(req.FilterValue) {
			matched = append(matched, b)
		}
	}

	start, end, ok := req.Window(len(matched))
	if !ok {
		return nil, apperr.Wrap(apperr.KindNoContent, model.ErrNoBooks, model.MsgNoBooks)
	}
	page := matched[start:end]

	views := make([]model.View, 0, len(page))
	for _, b := range page {
		views = append(views, model.ViewFor(role, b))
	}
	if err := s.present(views); err != nil {
		return nil, err
	}
	return views, nil
}

// GetBook - cache-aside theo id, không lọc trạng thái active
func (s *BookService) GetBook(ctx context.Context, role string, id string) (model.View, error) {
	bookID := utils.ParseStringToUUID(id)
	if bookID == uuid.Nil {
		return nil, apperr.Wrap(apperr.KindNotFound, model.ErrBookNotFound, model.MsgBookNotFound(id))
	}

	book, err := s.loadBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, apperr.Wrap(apperr.KindNotFound, model.ErrBookNotFound, model.MsgBookNotFound(id))
	}

	view := model.ViewFor(role, book)
	if err := s.present([]model.View{view}); err != nil {
		return nil, err
	}
	return view, nil
}

// DeleteBook - xoá mềm book đang active, rồi xoá cache
func (s *BookService) DeleteBook(ctx context.Context, id string) error {
	bookID := utils.ParseStringToUUID(id)
	if bookID == uuid.Nil {
		return apperr.Wrap(apperr.KindNotFound, model.ErrBookNotFound, model.MsgBookNotFound(id))
	}

	uow := s.newUoW()
	book, err := uow.Books().GetActiveByID(ctx, bookID)
	if err != nil {
		return err
	}
	if book == nil {
		return apperr.Wrap(apperr.KindNotFound, model.ErrBookNotFound, model.MsgBookNotFound(id))
	}

	if err := uow.Books().Delete(book); err != nil {
		return err
	}
	if err := uow.Save(ctx); err != nil {
		return err
	}

	s.invalidate(ctx, bookID)
	logger.Info("Book deleted", map[string]interface{}{"book_id": id})
	return nil
}

// ========================================
// HELPERS
// ========================================

func (s *BookService) loadBook(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	key := model.GenerateBookCacheKey(id.String())

	// 1. Cache hit
	if s.cache != nil {
		var cached model.Book
		found, err := s.cache.Get(ctx, key, &cached)
		switch {
		case err != nil:
			// lỗi cache không chặn request, đọc tiếp từ DB
			logger.Warn("Book cache get failed", map[string]interface{}{"key": key, "error": err.Error()})
		case found:
			return &cached, nil
		}
	}

	// 2. Cache miss → store
	book, err := s.newUoW().Books().GetByID(ctx, id)
	if err != nil || book == nil {
		return nil, err
	}

	// 3. Ghi lại cache
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, book, s.cacheTTL); err != nil {
			logger.Warn("Book cache set failed", map[string]interface{}{"key": key, "error": err.Error()})
		}
	}
	return book, nil
}

func (s *BookService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	key := model.GenerateBookCacheKey(id.String())
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Warn("Book cache delete failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

func (s *BookService) present(views []model.View) error {
	sensitive := make([]fieldcipher.Sensitive, len(views))
	for i, v := range views {
		sensitive[i] = v
	}
	if err := s.presenter.Present(sensitive...); err != nil {
		return apperr.Configuration(err)
	}
	return nil
}
