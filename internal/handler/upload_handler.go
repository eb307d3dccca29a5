package handler

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const maxUploadBytes = 10 << 20

type uploadPayload struct {
	Image string `json:"image"`
}

// UploadImage 上传单张图片，支持 JSON {"image": "<data uri|url>"} 与 multipart 字段 image。
func (a *API) UploadImage(c *gin.Context) {
	var payload string
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		encoded, status, err := readMultipartImage(c)
		if err != nil {
			respondError(c, status, err.Error())
			return
		}
		payload = encoded
	} else {
		var body uploadPayload
		if !bindJSON(c, &body, "invalid request body") {
			return
		}
		payload = body.Image
	}

	asset, err := a.gallery.UploadImage(c.Request.Context(), payload)
	if err != nil {
		respondServiceError(c, err, "failed to upload image")
		return
	}
	c.JSON(http.StatusOK, asset)
}

// readMultipartImage 将上传的文件转换为 data URI
func readMultipartImage(c *gin.Context) (string, int, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", http.StatusBadRequest, fmt.Errorf("image is required")
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", http.StatusBadRequest, fmt.Errorf("only image files can be uploaded")
	}
	if file.Size > maxUploadBytes {
		return "", http.StatusRequestEntityTooLarge, fmt.Errorf("image exceeds %d MB", maxUploadBytes>>20)
	}

	src, err := file.Open()
	if err != nil {
		return "", http.StatusInternalServerError, fmt.Errorf("failed to read upload")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
	if err != nil {
		return "", http.StatusInternalServerError, fmt.Errorf("failed to read upload")
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), http.StatusOK, nil
}
