package booking

import (
	"github.com/sbmarket/SBM-SchedulingService/pkg/dbmetrics"
)

// DBExecutor исполнитель запросов; *sql.DB и *dbmetrics.DB подходят оба.
// Транзакционный исполнитель приходит через контекст (dbmetrics.GetExecutor).
type DBExecutor = dbmetrics.DBExecutor
