package recorder

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordConfigure(_ *ConfigureEvent) error { return nil }
func (n *NoopRecorder) RecordTick(_ *TickEvent) error           { return nil }
func (n *NoopRecorder) RecordRent(_ *RentEvent) error           { return nil }
func (n *NoopRecorder) Close() error                            { return nil }
