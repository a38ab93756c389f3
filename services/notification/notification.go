package notification

import (
	"fmt"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/olahol/melody"
)

// SessionUserKey là key lưu user id trong session websocket
const SessionUserKey = "userID"

type Service interface {
	SendMessage(message string) error
	SendToUser(userID uint, message string) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

// SendToUser chỉ gửi tới các session đã đăng nhập của user
func (s *MelodyService) SendToUser(userID uint, message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.BroadcastFilter([]byte(message), func(session *melody.Session) bool {
		v, ok := session.Get(SessionUserKey)
		if !ok {
			return false
		}
		id, ok := v.(uint)
		return ok && id == userID
	})
}

// NopService bỏ qua mọi thông báo
type NopService struct{}

func (NopService) SendMessage(string) error      { return nil }
func (NopService) SendToUser(uint, string) error { return nil }

// Recorder giữ lại thông báo theo user, dùng trong test
type Recorder struct {
	mu       sync.Mutex
	messages map[uint][]string
}

func NewRecorder() *Recorder {
	return &Recorder{messages: make(map[uint][]string)}
}

func (r *Recorder) SendMessage(message string) error {
	return r.SendToUser(0, message)
}

func (r *Recorder) SendToUser(userID uint, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[userID] = append(r.messages[userID], message)
	return nil
}

func (r *Recorder) Messages(userID uint) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages[userID]...)
}

// MessageBuilder tạo payload JSON gửi qua websocket
type MessageBuilder struct {
	kind      string
	bookingID uint
	status    string
	amount    float64
	text      string
}

func NewMessageBuilder(kind string) *MessageBuilder {
	return &MessageBuilder{kind: kind}
}

func (b *MessageBuilder) WithBooking(bookingID uint, status string) *MessageBuilder {
	b.bookingID = bookingID
	b.status = status
	return b
}

func (b *MessageBuilder) WithAmount(amount float64) *MessageBuilder {
	b.amount = amount
	return b
}

func (b *MessageBuilder) WithText(text string) *MessageBuilder {
	b.text = text
	return b
}

func (b *MessageBuilder) Build() string {
	payload := struct {
		Type      string    `json:"type"`
		BookingID uint      `json:"bookingId,omitempty"`
		Status    string    `json:"status,omitempty"`
		Amount    float64   `json:"amount,omitempty"`
		Message   string    `json:"message,omitempty"`
		SentAt    time.Time `json:"sentAt"`
	}{b.kind, b.bookingID, b.status, b.amount, b.text, time.Now().UTC()}
	out, err := json.Marshal(payload)
	if err != nil {
		return b.text
	}
	return string(out)
}
