package model

// CreateJobResult is returned by create. SMSSent is advisory.
type CreateJobResult struct {
	Job      *SkipJob `json:"job"`
	SMSSent  bool     `json:"sms_sent"`
	SMSError string   `json:"sms_error,omitempty"`
}

// SendJobResult is returned by send and resend.
type SendJobResult struct {
	Job          *SkipJob `json:"job"`
	MessageSent  bool     `json:"message_sent"`
	DriverLink   string   `json:"driver_link"`
	MessageError string   `json:"message_error,omitempty"`
}

// JobResult wraps a job for start and update.
type JobResult struct {
	Job *SkipJob `json:"job"`
}

// CompleteJobResult is returned by complete. EmailSent is advisory; the job
// is completed whether or not the docket email went out.
type CompleteJobResult struct {
	Success    bool        `json:"success"`
	Completion *Completion `json:"completion"`
	EmailSent  bool        `json:"email_sent"`
	DocketNo   string      `json:"docket_no"`
	EmailError string      `json:"email_error,omitempty"`
}

// DeleteJobResult is returned by delete.
type DeleteJobResult struct {
	Success bool `json:"success"`
}

// CompletionResult is returned by the weight update.
type CompletionResult struct {
	Success    bool        `json:"success"`
	Completion *Completion `json:"completion"`
}
