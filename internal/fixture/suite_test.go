package fixture_test

import (
	"context"
	"testing"

	"github.com/phrazzld/dbfixture/internal/fixture"
	"github.com/phrazzld/dbfixture/internal/testdb"
	"github.com/stretchr/testify/suite"
)

type usersSuite struct {
	fixture.Suite
}

func (s *usersSuite) SetupSuite() {
	db := testdb.NewSQLiteDB(s.T())
	testdb.MigrateWithT(s.T(), db, testdb.DriverSQLite, migrations, "testdata/migrations")
	s.Fixture = fixture.New(fixture.Options{Conn: db, Dialect: fixture.SQLite, ValidateIdentifiers: true})
}

// The two tests insert the same primary key; both pass only if each runs in
// its own rolled-back transaction.
func (s *usersSuite) TestInsertFirst() {
	_, err := s.Tx().ExecContext(context.Background(), "INSERT INTO users (id, name) VALUES (?, ?)", 5, "x")
	s.Require().NoError(err)
	s.AssertExistsInTable("users", fixture.Criteria{"id": 5, "name": "x"})
}

func (s *usersSuite) TestInsertSecond() {
	s.AssertNotExistsInTable("users", fixture.Criteria{"id": 5})
	_, err := s.Tx().ExecContext(context.Background(), "INSERT INTO users (id, name) VALUES (?, ?)", 5, "y")
	s.Require().NoError(err)
	s.AssertExistsInTable("users", fixture.Criteria{"id": 5, "name": "y"})
}

func TestUsersSuite(t *testing.T) {
	suite.Run(t, new(usersSuite))
}
