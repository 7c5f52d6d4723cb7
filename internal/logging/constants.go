package logging

// Field names shared by every log entry the hosts emit.
const (
	FieldServiceID    = "service_id"
	FieldServiceClass = "service_class"
	FieldAdvisorID    = "advisor_id"
	FieldSubmissionID = "submission_id"
	FieldPass         = "pass"
	FieldDeductibles  = "deductibles"
	FieldIndex        = "index"
	FieldCount        = "count"
	FieldFailed       = "failed"
	FieldWorkers      = "workers"
	FieldFormat       = "format"
	FieldDelimiter    = "delimiter"
	FieldInputFile    = "input_file"
	FieldOutputFile   = "output_file"
	FieldCatalogFile  = "catalog_file"
	FieldMethod       = "method"
	FieldPath         = "path"
	FieldStatus       = "status"
	FieldRequestID    = "request_id"
	FieldRemoteAddr   = "remote_addr"
	FieldError        = "error"
	FieldDuration     = "duration_ms"
)
