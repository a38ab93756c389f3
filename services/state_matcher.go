package services

import (
	"fmt"
	"strings"
	"sync"

	apperrors "bimber/errors"
	"bimber/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Ngưỡng tương đồng tối thiểu để chấp nhận kết quả gần đúng
const stateSimilarityThreshold = 0.6

var stateAliases = map[string]models.State{
	"abuja":                     models.StateFCT,
	"fct":                       models.StateFCT,
	"federal capital territory": models.StateFCT,
	"nassarawa":                 models.StateNasarawa,
}

// StateMatcher ánh xạ tên bang người dùng nhập sang models.State
type StateMatcher struct {
	mu      sync.Mutex
	lookup  map[string]models.State
	matcher *closestmatch.ClosestMatch
}

func NewStateMatcher() *StateMatcher {
	lookup := make(map[string]models.State)
	for _, st := range models.AllStates() {
		lookup[normalizeInput(st.DisplayName())] = st
	}
	for alias, st := range stateAliases {
		lookup[alias] = st
	}

	keywords := make([]string, 0, len(lookup))
	for k := range lookup {
		keywords = append(keywords, k)
	}
	return &StateMatcher{
		lookup:  lookup,
		matcher: createMatcher(keywords),
	}
}

// Resolve trả về lỗi validation khi không có bang nào đủ giống
func (m *StateMatcher) Resolve(input string) (models.State, error) {
	query := normalizeState(input)
	if query == "" {
		return "", apperrors.NewAppError(apperrors.ErrCodeRequiredField, "State is required", nil)
	}
	if st, ok := m.lookup[query]; ok {
		return st, nil
	}

	m.mu.Lock()
	closest := m.matcher.Closest(query)
	m.mu.Unlock()

	if closest != "" && calculateSimilarity(query, closest) >= stateSimilarityThreshold {
		return m.lookup[closest], nil
	}
	return "", apperrors.Validation(fmt.Sprintf("Unknown state: %s", strings.TrimSpace(input)))
}

// Hàm chuẩn hóa chuỗi
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ToLower(unidecode.Unidecode(input))
	return input
}

func normalizeState(input string) string {
	s := normalizeInput(input)
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	s = strings.TrimSuffix(s, " state")
	return s
}

// Tạo đối tượng closestmatch cho danh sách từ khóa
func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

// Tính độ tương đồng giữa hai chuỗi
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len([]rune(a)))
	if l := float64(len([]rune(b))); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/maxLen
}
