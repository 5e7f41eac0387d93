package driver

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
)

func TestGetDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  *DBConfig
		want string
	}{
		{
			name: "mysql with protocol",
			cfg:  &DBConfig{User: "u", Password: "p", Protocol: "tcp", Host: "db", Port: 3306, Schema: "skillspark", Query: "parseTime=true"},
			want: "u:p@tcp(db:3306)/skillspark?parseTime=true",
		},
		{
			name: "postgres",
			cfg:  &DBConfig{User: "u", Password: "p", Host: "db", Port: 5432, Schema: "skillspark"},
			want: "u:p@db:5432/skillspark",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, getDSN(tt.cfg))
		})
	}
}

func TestMySQLAdapter(t *testing.T) {
	query := `
SELECT id, "index"
FROM   lesson
WHERE  course_id = $1 AND ordinal > $2`
	assert.Equal(t, "SELECT id, `index` FROM lesson WHERE course_id = ? AND ordinal > ?", mysqlAdapter(query))
}

func TestPGTxOptionAdapter(t *testing.T) {
	assert.Equal(t, pgx.TxOptions{}, pgTxOptionAdapter(nil))

	opts := pgTxOptionAdapter(&TxOptions{Isolation: sql.LevelRepeatableRead, AccessMode: AccessReadOnly})
	assert.Equal(t, pgx.RepeatableRead, opts.IsoLevel)
	assert.Equal(t, pgx.ReadOnly, opts.AccessMode)
	assert.Equal(t, pgx.NotDeferrable, opts.DeferrableMode)
}

func TestDuplicateDetection(t *testing.T) {
	assert.True(t, IsMySQLDuplicateEntry(&mysql.MySQLError{Number: MySQLDuplicateEntry}))
	assert.False(t, IsMySQLDuplicateEntry(errors.New("boom")))

	assert.True(t, IsPGUniqueViolation(&pgconn.PgError{Code: PGUniqueViolation}))
	assert.False(t, IsPGUniqueViolation(&pgconn.PgError{Code: "23503"}))
}

func TestLogQueryArgs(t *testing.T) {
	long := make([]byte, 80)
	args := logQueryArgs([]interface{}{[]byte{0xab}, long, 42})
	assert.Equal(t, "ab", args[0])
	assert.Contains(t, args[1], "truncated 16 bytes")
	assert.Equal(t, 42, args[2])
}
