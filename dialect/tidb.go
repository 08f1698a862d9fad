package dialect

// TiDB speaks the MySQL wire dialect.
type TiDB struct {
	*MySQL
}

func NewTiDBDialect() Dialect {
	return &TiDB{
		MySQL: newMySQL(),
	}
}

func (t *TiDB) Name() string { return "tidb" }
