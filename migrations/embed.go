// migrations содержит SQL-миграции схемы, встроенные в бинарь
// и применяемые goose'ом при старте сервиса.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
