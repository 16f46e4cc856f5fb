package camera

import (
	"encoding/json"
	"fmt"
)

// Resolution - разрешение кадра. В JSON сериализуется как пара [width, height].
type Resolution struct {
	Width  int
	Height int
}

// MarshalJSON сериализует разрешение как [width, height]
func (r Resolution) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{r.Width, r.Height})
}

// UnmarshalJSON разбирает разрешение из пары [width, height]
func (r *Resolution) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("resolution must be a [width, height] pair: %w", err)
	}

	r.Width = pair[0]
	r.Height = pair[1]
	return nil
}

// String возвращает разрешение в виде "640x480"
func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// Capability - режим захвата, который устройство может выдавать
type Capability struct {
	Resolution Resolution `json:"resolution"`
	Framerate  int        `json:"framerate"`
}

// Config - единственная активная конфигурация захвата.
// Меняется только целиком через Negotiator, частичных обновлений нет.
type Config struct {
	Device     string     `json:"device"`
	Resolution Resolution `json:"resolution"`
	Framerate  int        `json:"framerate"`
	Rotation   int        `json:"rotation"`
}

// ValidRotation сообщает, является ли значение допустимым поворотом кадра
func ValidRotation(rotation int) bool {
	switch rotation {
	case 0, 90, 180, 270:
		return true
	default:
		return false
	}
}
