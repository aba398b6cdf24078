package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// 文件上传相关常量
const (
	MimePDF         = "application/pdf"
	MimeZip         = "application/zip"
	MimeImage       = "image/"
	MimeOctetStream = "application/octet-stream"
)

var (
	AllowedDeliverableTypes = []string{MimePDF, MimeZip, MimeImage, MimeOctetStream, "text/"}
)
