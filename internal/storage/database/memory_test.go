package database_test

import (
	"testing"

	"github.com/LeJamon/goRentald/internal/storage/database"
	"github.com/LeJamon/goRentald/internal/storage/database/dbtest"
)

func TestMemoryDB(t *testing.T) {
	dbtest.Run(t, func(t *testing.T) database.DB {
		return database.NewMemoryDB()
	})
}
