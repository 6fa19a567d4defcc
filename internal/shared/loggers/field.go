package loggers

const (
	FieldApp        = "app"
	FieldComponent  = "component"
	FieldHttpMethod = "http_method"
	FieldHttpPath   = "http_path"
	FieldHttpStatus = "http_status"
	FieldUserAgent  = "user_agent"

	FieldDuration   = "duration"
	FieldRequestID  = "request_id"
	FieldErrorStack = "error_stack"
	FieldErrorCode  = "error_code"

	FieldPartitionId = "partition_id"

	FieldProbe      = "probe"
	FieldProbeType  = "probe_type"
	FieldEvent      = "event"
	FieldFilterID   = "filter_id"
	FieldIndex      = "index"
	FieldCollection = "collection"
	FieldMeasure    = "measure"
)
