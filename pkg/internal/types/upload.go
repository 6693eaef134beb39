package types

// ImageUploadResponse 图片上传结果.
type ImageUploadResponse struct {
	Message     string `json:"message"`
	ImageURL    string `json:"imageUrl"`
	Filename    string `json:"filename"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// VideoUploadResponse 视频上传结果.
type VideoUploadResponse struct {
	Message  string `json:"message"`
	VideoURL string `json:"videoUrl"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}
