package sqlkit

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Konsultn-Engineering/sqlkit/connector"
	"github.com/Konsultn-Engineering/sqlkit/database"
	"github.com/Konsultn-Engineering/sqlkit/dialect"
)

type mockConnection struct {
	db     *database.SqlDatabase
	closed bool
}

func (c *mockConnection) Database() database.Database      { return c.db }
func (c *mockConnection) Dialect() dialect.Dialect         { return dialect.NewMySQLDialect() }
func (c *mockConnection) Health(ctx context.Context) error { return c.db.PingContext(ctx) }
func (c *mockConnection) Stats() connector.ConnectionStats { return connector.ConnectionStats{} }
func (c *mockConnection) Close() error {
	c.closed = true
	return c.db.Close()
}

type mockProvider struct {
	conn *mockConnection
}

func (p *mockProvider) Connect(ctx context.Context, cfg connector.Config) (connector.Connection, error) {
	return p.conn, nil
}

func (p *mockProvider) Dialect() dialect.Dialect { return dialect.NewMySQLDialect() }

func newMockConnection(t *testing.T) (*mockConnection, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual), sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	sdb, err := database.NewSqlDatabase(db)
	require.NoError(t, err)
	return &mockConnection{db: sdb}, mock
}

func TestOpen(t *testing.T) {
	conn, mock := newMockConnection(t)
	connector.Register("sqlkit-mock", &mockProvider{conn: conn})

	db, err := Open(context.Background(), connector.Config{Driver: "sqlkit-mock", Host: "localhost", Port: 3306})
	require.NoError(t, err)
	assert.Same(t, conn, db.Connection())

	mock.ExpectPing()
	mock.ExpectExec("DELETE FROM `users` WHERE `id` = ?").
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectClose()

	require.NoError(t, db.Health(context.Background()))
	_, err = db.Delete().From("users").Where("id", 1).Execute(context.Background())
	require.NoError(t, err)
	require.NoError(t, db.Close())
	assert.True(t, conn.closed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), connector.Config{Driver: "nope", Host: "localhost", Port: 1})
	assert.ErrorIs(t, err, connector.ErrProviderNotRegistered)
}

func TestClusterRouting(t *testing.T) {
	primary, pmock := newMockConnection(t)
	replica, rmock := newMockConnection(t)
	c := WrapCluster(connector.NewCluster(
		connector.ClusterConfig{ReadStrategy: "round_robin"}, primary, replica,
	))
	ctx := context.Background()

	rmock.ExpectQuery("SELECT * FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	pmock.ExpectExec("UPDATE `users` SET `name` = ?").
		WithArgs("x").
		WillReturnResult(sqlmock.NewResult(0, 3))

	r, err := c.Reader().Query(ctx, c.Reader().Select().From("users"))
	require.NoError(t, err)
	require.NoError(t, r.Release())

	_, err = c.Writer().Update().Table("users").Set("name", "x").Execute(ctx)
	require.NoError(t, err)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.TotalQueries)
	assert.Equal(t, int64(1), stats.TotalExecs)

	pmock.ExpectClose()
	rmock.ExpectClose()
	require.NoError(t, c.Close())
	assert.NoError(t, pmock.ExpectationsWereMet())
	assert.NoError(t, rmock.ExpectationsWereMet())
}
