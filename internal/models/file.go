package models

type StoredFile struct {
	ID          int    `json:"id"`
	FileName    string `json:"file_name"`
	FilePath    string `json:"file_path"`
	FileSize    int64  `json:"file_size"`
	ContentType string `json:"file_content_type"`
	FileType    string `json:"file_type"`
	UserID      int    `json:"user_id"`
}

// GetFilesRequest selects files by id. An empty list, or -1 as the first
// element, means "all files owned by the caller".
type GetFilesRequest struct {
	FileIDs []int `json:"file_ids"`
}
