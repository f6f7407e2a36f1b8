package pgxutil

import (
	"database/sql"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestToPgxTxOptions(t *testing.T) {
	assert.Equal(t, pgx.TxOptions{}, ToPgxTxOptions(nil))

	opts := ToPgxTxOptions(&sql.TxOptions{Isolation: sql.LevelSerializable, ReadOnly: true})
	assert.Equal(t, pgx.Serializable, opts.IsoLevel)
	assert.Equal(t, pgx.ReadOnly, opts.AccessMode)

	opts = ToPgxTxOptions(&sql.TxOptions{Isolation: sql.LevelReadCommitted})
	assert.Equal(t, pgx.ReadCommitted, opts.IsoLevel)
	assert.Equal(t, pgx.ReadWrite, opts.AccessMode)
}

func TestToPgxIsoLevelDefault(t *testing.T) {
	assert.Equal(t, pgx.TxIsoLevel(""), ToPgxIsoLevel(sql.LevelDefault))
	assert.Equal(t, pgx.RepeatableRead, ToPgxIsoLevel(sql.LevelSnapshot))
}
