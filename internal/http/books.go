package http

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/catalog"
	"github.com/mrlokans/bookshelf/internal/entities"
)

const (
	msgBookAdded         = "Book added"
	msgBookUpdated       = "Book updated"
	msgBookDeleted       = "Book deleted"
	msgAddFailed         = "Failed to add book"
	msgUpdateFailed      = "Failed to update book"
	msgDeleteFailed      = "Failed to delete book"
	msgBookNotFound      = "Book not found"
	msgIDNotFound        = "Id not found"
	msgInvalidBodyDetail = "Invalid request body"
)

// BookCatalog is the catalog behaviour the HTTP layer depends on.
type BookCatalog interface {
	Create(input entities.BookInput) (string, error)
	List(filter catalog.ListFilter) []entities.BookSummary
	GetByID(id string) (entities.Book, error)
	UpdateByID(id string, input entities.BookInput) (entities.Book, error)
	DeleteByID(id string) (entities.Book, error)
}

// BookAuditor records catalog changes. It is optional.
type BookAuditor interface {
	LogBookCreated(info audit.RequestInfo, book entities.Book)
	LogBookUpdated(info audit.RequestInfo, book entities.Book)
	LogBookDeleted(info audit.RequestInfo, book entities.Book)
	LogBookFailure(info audit.RequestInfo, eventType entities.AuditEventType, bookID string, err error)
}

type BooksController struct {
	catalog BookCatalog
	auditor BookAuditor
}

// NewBooksController creates the catalog controller. auditor may be nil.
func NewBooksController(catalog BookCatalog, auditor BookAuditor) *BooksController {
	return &BooksController{
		catalog: catalog,
		auditor: auditor,
	}
}

// AddBook creates a book.
// POST /books
func (bc *BooksController) AddBook(c *gin.Context) {
	var input entities.BookInput
	if !bindBookInput(c, &input, msgAddFailed) {
		return
	}

	id, err := bc.catalog.Create(input)
	if err != nil {
		bc.recordFailure(c, entities.AuditEventCreate, "", err)

		var verr *catalog.ValidationError
		if errors.As(err, &verr) {
			respondBadRequest(c, msgAddFailed+". "+verr.Detail)
			return
		}
		respondInternalError(c, err, msgAddFailed)
		return
	}

	if bc.auditor != nil {
		if book, err := bc.catalog.GetByID(id); err == nil {
			bc.auditor.LogBookCreated(requestInfo(c), book)
		}
	}

	respondCreated(c, msgBookAdded, gin.H{"bookId": id})
}

// GetAllBooks lists books, optionally filtered by reading, finished or name.
// GET /books
func (bc *BooksController) GetAllBooks(c *gin.Context) {
	filter := catalog.ListFilter{
		Reading:  queryPtr(c, "reading"),
		Finished: queryPtr(c, "finished"),
		Name:     queryPtr(c, "name"),
	}

	respondOK(c, "", gin.H{"books": bc.catalog.List(filter)})
}

// GetBook returns one book with every field.
// GET /books/:bookId
func (bc *BooksController) GetBook(c *gin.Context) {
	book, err := bc.catalog.GetByID(c.Param("bookId"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondNotFound(c, msgBookNotFound)
			return
		}
		respondInternalError(c, err, msgBookNotFound)
		return
	}

	respondOK(c, "", gin.H{"book": book})
}

// UpdateBook replaces the mutable fields of a book.
// PUT /books/:bookId
func (bc *BooksController) UpdateBook(c *gin.Context) {
	bookID := c.Param("bookId")

	var input entities.BookInput
	if !bindBookInput(c, &input, msgUpdateFailed) {
		return
	}

	book, err := bc.catalog.UpdateByID(bookID, input)
	if err != nil {
		bc.recordFailure(c, entities.AuditEventUpdate, bookID, err)

		var verr *catalog.ValidationError
		switch {
		case errors.As(err, &verr):
			respondBadRequest(c, msgUpdateFailed+". "+verr.Detail)
		case errors.Is(err, catalog.ErrNotFound):
			respondNotFound(c, msgUpdateFailed+". "+msgIDNotFound)
		default:
			respondInternalError(c, err, msgUpdateFailed)
		}
		return
	}

	if bc.auditor != nil {
		bc.auditor.LogBookUpdated(requestInfo(c), book)
	}

	respondOK(c, msgBookUpdated, nil)
}

// DeleteBook removes a book.
// DELETE /books/:bookId
func (bc *BooksController) DeleteBook(c *gin.Context) {
	bookID := c.Param("bookId")

	book, err := bc.catalog.DeleteByID(bookID)
	if err != nil {
		bc.recordFailure(c, entities.AuditEventDelete, bookID, err)

		if errors.Is(err, catalog.ErrNotFound) {
			respondNotFound(c, msgDeleteFailed+". "+msgIDNotFound)
			return
		}
		respondInternalError(c, err, msgDeleteFailed)
		return
	}

	if bc.auditor != nil {
		bc.auditor.LogBookDeleted(requestInfo(c), book)
	}

	respondOK(c, msgBookDeleted, nil)
}

func (bc *BooksController) recordFailure(c *gin.Context, eventType entities.AuditEventType, bookID string, err error) {
	if bc.auditor == nil {
		return
	}
	bc.auditor.LogBookFailure(requestInfo(c), eventType, bookID, err)
}

// bindBookInput decodes the JSON body. An empty body decodes to a zero
// input so that it is rejected by validation as a missing name.
func bindBookInput(c *gin.Context, input *entities.BookInput, failPrefix string) bool {
	if err := c.ShouldBindJSON(input); err != nil && !errors.Is(err, io.EOF) {
		respondBadRequest(c, failPrefix+". "+msgInvalidBodyDetail)
		return false
	}
	return true
}

// queryPtr distinguishes an absent query parameter (nil) from an empty one.
func queryPtr(c *gin.Context, key string) *string {
	value, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	return &value
}
