package ports

// Metrics puerto de salida para contadores de negocio (Prometheus en producción).
type Metrics interface {
	AccessDecision(module, verb string, allowed bool)
	PaymentRecorded(mode string)
	NotificationsCreated(kind string, n int)
}

// NopMetrics descarta todas las observaciones (tests, CLI).
type NopMetrics struct{}

func (NopMetrics) AccessDecision(string, string, bool) {}
func (NopMetrics) PaymentRecorded(string)              {}
func (NopMetrics) NotificationsCreated(string, int)    {}
