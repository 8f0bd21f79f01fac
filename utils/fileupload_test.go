package utils

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateImageFile(t *testing.T) {
	tests := []struct {
		name         string
		filename     string
		size         int64
		expectError  bool
		expectedCode string
	}{
		{
			name:        "Valid PNG file",
			filename:    "holo-dragon.png",
			size:        1024,
			expectError: false,
		},
		{
			name:        "Valid PNG file with uppercase extension",
			filename:    "design.PNG",
			size:        2048,
			expectError: false,
		},
		{
			name:         "Reject JPEG file",
			filename:     "design.jpg",
			size:         1024,
			expectError:  true,
			expectedCode: "INVALID_FILE_FORMAT",
		},
		{
			name:         "Reject file without extension",
			filename:     "design",
			size:         1024,
			expectError:  true,
			expectedCode: "INVALID_FILE_FORMAT",
		},
		{
			name:         "Reject oversized file",
			filename:     "design.png",
			size:         MaxFileSize + 1,
			expectError:  true,
			expectedCode: "FILE_TOO_LARGE",
		},
		{
			name:        "Accept file at the size limit",
			filename:    "design.png",
			size:        MaxFileSize,
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileHeader := &multipart.FileHeader{
				Filename: tt.filename,
				Size:     tt.size,
			}

			err := ValidateImageFile(fileHeader)

			if tt.expectError {
				assert.Error(t, err)
				var uploadErr *FileUploadError
				assert.ErrorAs(t, err, &uploadErr)
				assert.Equal(t, tt.expectedCode, uploadErr.Code)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
