package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// 文件上传相关常量
const (
	MimeImage       = "image/"
	MimeAudio       = "audio/"
	MimeMP3         = "audio/mpeg"
	MimeOctetStream = "application/octet-stream"
)

var (
	AllowedAudioExtensions = []string{".mp3", ".wav", ".m4a", ".ogg", ".aac", ".flac"}
	AllowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
)
