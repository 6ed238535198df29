package models

type CreateApplicantRequest struct {
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone,omitempty"`
}

type UpdateApplicantRequest struct {
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

type CreateJobPostRequest struct {
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Department     string       `json:"department"`
	Location       string       `json:"location"`
	EmploymentType string       `json:"employment_type"`
	SalaryMin      *float64     `json:"salary_min,omitempty"`
	SalaryMax      *float64     `json:"salary_max,omitempty"`
	SalaryCurrency string       `json:"salary_currency"`
	SalaryPeriod   SalaryPeriod `json:"salary_period"`
}

type UpdateJobPostRequest struct {
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	Status      *JobPostStatus `json:"status,omitempty"`
}

type CreateApplicationRequest struct {
	ApplicantID    string   `json:"applicant_id"`
	JobPostID      string   `json:"job_post_id"`
	ExpectedSalary *float64 `json:"expected_salary,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

type TransitionRequest struct {
	TargetStage Stage  `json:"target_stage"`
	Note        string `json:"note,omitempty"`
	Actor       string `json:"actor,omitempty"`
}

type CreateInterviewRequest struct {
	Name      string              `json:"name"`
	Skills    []InterviewSkill    `json:"skills,omitempty"`
	Questions []InterviewQuestion `json:"questions,omitempty"`
	JobPostID *string             `json:"job_post_id,omitempty"`
}

type IssueInvitationRequest struct {
	ApplicantEmail string `json:"applicant_email"`
	InterviewID    string `json:"interview_id"`
}

// IssueInvitationResponse reports the minted credential. EmailSent is
// false when the outbound notification failed; the invitation itself is
// still persisted and valid.
type IssueInvitationResponse struct {
	ID        string `json:"id"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
	EmailSent bool   `json:"email_sent"`
}

type ValidateInvitationResponse struct {
	InvitationID  string `json:"invitation_id"`
	ApplicantID   string `json:"applicant_id"`
	ApplicantName string `json:"applicant_name"`
	InterviewID   string `json:"interview_id"`
	ExpiresAt     string `json:"expires_at"`
}

type CreateContextRequest struct {
	JobDescription string   `json:"job_description"`
	Language       string   `json:"language,omitempty"`
	DocumentIDs    []string `json:"document_ids,omitempty"`
}

type AttachDocumentsRequest struct {
	DocumentIDs []string `json:"document_ids"`
}

type CreateChatRequest struct {
	Title string `json:"title,omitempty"`
}

type SendChatMessageRequest struct {
	Content string `json:"content"`
}

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	FileType     string `json:"file_type"`
}
