package admin

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	adminapp "github.com/sand-hq/campaign-api/internal/admin/application"
	"github.com/sand-hq/campaign-api/internal/fault"
	"github.com/sand-hq/campaign-api/internal/interfaces/http/common"
)

// isMultipart はリクエストが multipart/form-data かどうかを判定する。
func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// readPhoto は multipart の画像ファイルを取り出す。fields を順に探し、見つからなければ nil を返す。
// 呼び出し側は返された close をサービス呼び出し後に実行する。
func readPhoto(r *http.Request, fields ...string) (*adminapp.PhotoUpload, func(), error) {
	noop := func() {}
	if err := r.ParseMultipartForm(common.MaxMultipartMemory); err != nil {
		return nil, noop, fault.Validationf("invalid multipart body: %v", err)
	}
	for _, field := range fields {
		file, header, err := r.FormFile(field)
		if errors.Is(err, http.ErrMissingFile) {
			continue
		}
		if err != nil {
			return nil, noop, fault.Validationf("invalid %s upload: %v", field, err)
		}
		contentType := header.Header.Get("Content-Type")
		if contentType != "" && !strings.HasPrefix(contentType, "image/") {
			file.Close()
			return nil, noop, fault.Validationf("%s must be an image", field)
		}
		upload := &adminapp.PhotoUpload{
			Filename:    header.Filename,
			ContentType: contentType,
			Body:        file,
		}
		return upload, func() { file.Close() }, nil
	}
	return nil, noop, nil
}

// formValue は別名を含めて最初に値を持つフォーム項目を返す。
func formValue(r *http.Request, keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(r.FormValue(key)); v != "" {
			return v
		}
	}
	return ""
}
