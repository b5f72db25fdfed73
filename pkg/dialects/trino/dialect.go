package trino

import (
	"github.com/leapstack-labs/sqlequiv/pkg/dialect"
)

func init() {
	dialect.Register(Trino)
}

// Trino is the Trino dialect.
var Trino = dialect.New(Config).Build()
