package catalog

import (
	"strings"

	"github.com/mrlokans/bookshelf/internal/entities"
)

// ListFilter holds the raw listing query values. A nil field means the
// parameter was not supplied at all.
//
// Only one criterion is ever applied, checked in this order:
// reading=1, reading=0, finished=1, finished=0, name. Values other than
// "1" and "0" for reading or finished are ignored.
type ListFilter struct {
	Reading  *string
	Finished *string
	Name     *string
}

func (f ListFilter) predicate() func(entities.Book) bool {
	switch {
	case isFlag(f.Reading, "1"):
		return func(b entities.Book) bool { return b.Reading }
	case isFlag(f.Reading, "0"):
		return func(b entities.Book) bool { return !b.Reading }
	case isFlag(f.Finished, "1"):
		return func(b entities.Book) bool { return b.Finished }
	case isFlag(f.Finished, "0"):
		return func(b entities.Book) bool { return !b.Finished }
	case f.Name != nil:
		needle := strings.ToLower(*f.Name)
		return func(b entities.Book) bool {
			return strings.Contains(strings.ToLower(b.Name), needle)
		}
	default:
		return nil
	}
}

func isFlag(value *string, want string) bool {
	return value != nil && *value == want
}
