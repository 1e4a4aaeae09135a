package inventory

import "github.com/jhoicas/ProfitManager-api/internal/domain/repository"

// TxRunner alias local del puerto transaccional, para que los llamadores no importen repository.
type TxRunner = repository.TxRunner
