package market

import "github.com/m04kA/SMC-StallCalendar/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
