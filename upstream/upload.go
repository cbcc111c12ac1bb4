package upstream

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
)

// ProgressFunc получает количество переданных байт и общий размер.
// Вызывается по мере чтения файла; total равен -1, если размер неизвестен.
type ProgressFunc func(sent, total int64)

type progressReader struct {
	r        io.Reader
	total    int64
	sent     int64
	progress ProgressFunc
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 {
		p.sent += int64(n)
		if p.progress != nil {
			p.progress(p.sent, p.total)
		}
	}
	return n, err
}

// Upload отправляет файл multipart/form-data POST-запросом (аватары,
// баннеры) с колбэком прогресса загрузки.
func (c *Client) Upload(ctx context.Context, scope Scope, path, field, filename string, file io.Reader, size int64, progress ProgressFunc, out interface{}) error {
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		part, err := writer.CreateFormFile(field, filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		src := &progressReader{r: file, total: size, progress: progress}
		if _, err := io.Copy(part, src); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(writer.Close())
	}()

	err := c.do(ctx, scope, http.MethodPost, path, pr, writer.FormDataContentType(), out)
	if err != nil {
		// Дочитывание не требуется: do всегда закрывает тело ответа,
		// а pipe закрывается стороной записи.
		return err
	}
	return nil
}
