// Package filestore stores uploaded post images and hands back the external
// object reference embedded in post documents. Keys are derived from content
// md5, so re-uploading identical bytes is a no-op returning the same key.
package filestore

// ImageStore is the surface post handlers write images through. CleanUp
// releases local resources; remote stores treat it as a no-op.
type ImageStore interface {
	Store(data []byte, ext string) (key string, err error)
	GetUrlFromKey(key string) string
	CleanUp()
}
