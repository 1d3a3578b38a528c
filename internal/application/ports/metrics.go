package ports

// BusinessMetrics contadores de negocio.
type BusinessMetrics interface {
	LedgerEntry(txType string)
	TransferFinished(status string)
	OrderFinished(orderType, status string)
	WorkingHoursDenied()
}

// NopMetrics implementación vacía para tests y cuando las métricas están deshabilitadas.
type NopMetrics struct{}

func (NopMetrics) LedgerEntry(string)           {}
func (NopMetrics) TransferFinished(string)      {}
func (NopMetrics) OrderFinished(string, string) {}
func (NopMetrics) WorkingHoursDenied()          {}
