package registration

import "context"

/* Small, focused interfaces following "The Go Way"
 * The same Repository contract is served by the Redis and Postgres backends;
 * the backend is chosen once at construction, never per call
 */

// Reader provides read operations for registrations
type Reader interface {
	Get(ctx context.Context, id string) (Registration, error)
	List(ctx context.Context) ([]Registration, error)
}

// Writer provides write operations for registrations
type Writer interface {
	Store(ctx context.Context, reg Registration) error
	Update(ctx context.Context, reg Registration) error
	Delete(ctx context.Context, id string) error
}

type Repository interface {
	Reader
	Writer
	Close(ctx context.Context) error
}
