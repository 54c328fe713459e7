package db

import (
	"testing"

	"stock_simulator/internal/config"
	"stock_simulator/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "oracle"})
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}

func TestOpenInMemoryMigrates(t *testing.T) {
	gdb, err := OpenInMemory()
	require.NoError(t, err)

	for _, model := range []any{&domain.User{}, &domain.Holding{}, &domain.Transaction{}} {
		assert.True(t, gdb.Migrator().HasTable(model))
	}
}

func TestHoldingOwnerSymbolIsUnique(t *testing.T) {
	gdb, err := OpenInMemory()
	require.NoError(t, err)

	require.NoError(t, gdb.Create(&domain.Holding{UserID: 1, Symbol: "AAPL", Shares: 1}).Error)
	assert.Error(t, gdb.Create(&domain.Holding{UserID: 1, Symbol: "AAPL", Shares: 2}).Error)
	assert.NoError(t, gdb.Create(&domain.Holding{UserID: 2, Symbol: "AAPL", Shares: 2}).Error)
}
