package readstore

import sq "github.com/Masterminds/squirrel"

// psql builds every query with PostgreSQL dollar placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
