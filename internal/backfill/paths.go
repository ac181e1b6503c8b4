package backfill

import (
	"net/url"
	"strings"
)

// ResolvePath 将保存的媒体引用转为相对于存储桶的对象路径。
// 完整 URL 必须包含 /<bucket>/；以 "<bucket>/" 开头的值去掉该前缀；
// 其余值视为已经是路径。没有可用内容时 ok 为 false。
func ResolvePath(raw, bucket string) (string, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", false
	}

	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		u, err := url.Parse(value)
		if err != nil {
			return "", false
		}
		escaped := u.EscapedPath()
		marker := "/" + bucket + "/"
		idx := strings.Index(escaped, marker)
		if idx < 0 {
			return "", false
		}
		decoded, err := url.PathUnescape(escaped[idx+len(marker):])
		if err != nil || decoded == "" {
			return "", false
		}
		return decoded, true
	}

	if rest, found := strings.CutPrefix(value, bucket+"/"); found {
		if rest == "" {
			return "", false
		}
		return rest, true
	}
	return value, true
}

// ThumbPath 为原图对象路径返回 <dir>/thumbs/<base>-thumb.jpg。
// 以点开头的文件名保留该点；位于存储桶根目录的原图
// 得到 thumbs/<base>-thumb.jpg。
func ThumbPath(original string) string {
	dir, file := "", original
	if i := strings.LastIndex(original, "/"); i >= 0 {
		dir, file = original[:i], original[i+1:]
	}
	base := file
	if dot := strings.LastIndex(file, "."); dot > 0 {
		base = file[:dot]
	}
	if dir == "" {
		return "thumbs/" + base + "-thumb.jpg"
	}
	return dir + "/thumbs/" + base + "-thumb.jpg"
}
