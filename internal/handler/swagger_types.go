package handler

// Doc-only response shapes for swagger annotations. Handlers return the
// APIResponse envelope; these types let annotations name the data payload.

// Response is the generic success envelope.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody is the error envelope.
type ErrorResponseBody struct {
	Success bool     `json:"success" example:"false"`
	Error   APIError `json:"error"`
}

// MessageResponse carries a human-readable confirmation message.
type MessageResponse struct {
	Message string `json:"message" example:"resource deleted"`
}

// DownloadURLResponse carries a presigned object storage URL.
type DownloadURLResponse struct {
	URL string `json:"url" example:"https://s3.amazonaws.com/bucket/key?X-Amz-Signature=..."`
}
