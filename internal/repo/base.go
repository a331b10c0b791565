package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base carries the GORM connection shared by the domain repositories and
// binds request contexts onto it. Domain repositories embed a Base and rebind
// it when a service hands them a transaction.
type Base struct {
	conn *gorm.DB
}

func NewBase(conn *gorm.DB) Base {
	return Base{conn: conn}
}

// WithConn returns a Base bound to a different connection, typically a
// transaction handle from the service layer.
func (b Base) WithConn(conn *gorm.DB) Base {
	return Base{conn: conn}
}

// DB returns the connection with ctx attached so cancellation and deadlines
// reach the driver. A nil ctx returns the raw connection.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.conn
	}
	return b.conn.WithContext(ctx)
}
