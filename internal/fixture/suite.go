package fixture

import (
	"errors"

	"github.com/phrazzld/dbfixture/internal/store"
	"github.com/stretchr/testify/suite"
)

// Suite plugs a Fixture into a testify suite. Embed it and assign Fixture,
// typically in SetupSuite:
//
//	type UserSuite struct {
//	    fixture.Suite
//	}
//
//	func (s *UserSuite) SetupSuite() {
//	    s.Fixture = fixture.New(fixture.Options{Conn: db, Dialect: fixture.SQLite})
//	}
//
// Every test method then runs in its own rolled-back transaction.
type Suite struct {
	suite.Suite
	Fixture *Fixture

	setupErr error
}

// SetupTest begins the test transaction.
func (s *Suite) SetupTest() {
	s.setupErr = s.Fixture.Setup(s.T())
	s.Require().NoError(s.setupErr, "fixture setup")
}

// TearDownTest rolls the test transaction back.
func (s *Suite) TearDownTest() {
	err := s.Fixture.Teardown(s.T())
	if errors.Is(err, ErrMissingConnection) && errors.Is(s.setupErr, ErrMissingConnection) {
		// Already reported by SetupTest.
		return
	}
	s.NoError(err, "fixture teardown")
}

// Tx returns the open test transaction.
func (s *Suite) Tx() store.DBTX {
	return s.Fixture.Tx()
}

// AssertExistsInTable asserts that a row of table matches criteria.
func (s *Suite) AssertExistsInTable(table string, criteria Criteria) bool {
	return s.Fixture.AssertExistsInTable(s.T(), table, criteria)
}

// AssertNotExistsInTable asserts that no row of table matches criteria.
func (s *Suite) AssertNotExistsInTable(table string, criteria Criteria) bool {
	return s.Fixture.AssertNotExistsInTable(s.T(), table, criteria)
}
