package swaggerui_test

import (
	"bytes"
	"testing"

	"github.com/Gobd/docer/swaggerui"
	"github.com/stretchr/testify/assert"
)

func TestBarProgress(t *testing.T) {
	var out bytes.Buffer
	bar := swaggerui.NewBarProgress(&out)

	bar.Start("swagger-v3.42.0.zip", 2048)
	assert.Equal(t, "[--------------------] swagger-v3.42.0.zip 0% 0/2,048 bytes", bar.Line())

	bar.Add(1024)
	assert.Equal(t, "[==========----------] swagger-v3.42.0.zip 50% 1,024/2,048 bytes", bar.Line())

	bar.Add(1024)
	bar.Done()
	assert.Equal(t, "[====================] swagger-v3.42.0.zip 100% 2,048/2,048 bytes", bar.Line())
	assert.Equal(t,
		"\r[--------------------] swagger-v3.42.0.zip 0% 0/2,048 bytes"+
			"\r[==========----------] swagger-v3.42.0.zip 50% 1,024/2,048 bytes"+
			"\r[====================] swagger-v3.42.0.zip 100% 2,048/2,048 bytes\n",
		out.String())
}

func TestBarProgressUnknownSize(t *testing.T) {
	var out bytes.Buffer
	bar := swaggerui.NewBarProgress(&out)

	bar.Start("bundle.zip", -1)
	bar.Add(12345)
	assert.Equal(t, "bundle.zip 12,345 bytes", bar.Line())
}
