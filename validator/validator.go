package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"bimber/constants"
	apperrors "bimber/errors"
	"bimber/models"

	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var prohibitedWords = []string{
	"spam", "hate", "violence", "racist", "abuse", "fuck", "kill", "sex", "bad", "poor",
}

// RegisterBindingRules đăng ký rule riêng cho validator của gin
func RegisterBindingRules() error {
	v, ok := binding.Validator.Engine().(*playground.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	return RegisterRules(v)
}

// RegisterRules: roomtype (SINGLE/DOUBLE/SUITE/DELUXE, không phân biệt hoa thường) và notblank
func RegisterRules(v *playground.Validate) error {
	if err := v.RegisterValidation("roomtype", func(fl playground.FieldLevel) bool {
		return models.IsValidRoomType(strings.ToUpper(strings.TrimSpace(fl.Field().String())))
	}); err != nil {
		return err
	}
	return v.RegisterValidation("notblank", func(fl playground.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// BindingError chuyển lỗi bind của gin thành AppError dễ đọc
func BindingError(err error) error {
	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "Invalid request body", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return apperrors.NewAppError(apperrors.ErrCodeValidation, strings.Join(msgs, "; "), err)
}

func fieldMessage(fe playground.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "roomtype":
		return fmt.Sprintf("%s must be one of SINGLE, DOUBLE, SUITE, DELUXE", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// ValidateRegistration validate thông tin đăng ký
func ValidateRegistration(username, email, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || password == "" {
		return apperrors.NewAppError(apperrors.ErrCodeRequiredField, "Username, email and password are required", nil)
	}
	if len(strings.TrimSpace(username)) < constants.MinUsernameLength {
		return apperrors.Validation(fmt.Sprintf("Username must be at least %d characters", constants.MinUsernameLength))
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	return ValidatePassword(password)
}

func ValidateEmail(email string) error {
	if !emailRegex.MatchString(strings.TrimSpace(email)) {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "Invalid email address", nil)
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < constants.MinPasswordLength {
		return apperrors.Validation(fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	}
	return nil
}

// ValidateAmount: số tiền nạp phải lớn hơn 0 và không vượt constants.MaxAmount
func ValidateAmount(amount float64) error {
	if amount <= 0 {
		return apperrors.ErrInvalidAmount
	}
	return ValidateTotal(amount)
}

// ValidateRoomPrice: giá một đêm phải dương và vừa cột decimal(14,2)
func ValidateRoomPrice(price float64) error {
	if price <= 0 {
		return apperrors.Validation("Room price must be greater than zero")
	}
	return ValidateTotal(price)
}

// ValidateTotal kiểm tra tổng tiền (giá x số đêm, số dư sau khi nạp) còn vừa cột decimal(14,2)
func ValidateTotal(total float64) error {
	if total > constants.MaxAmount {
		return apperrors.ErrAmountTooLarge
	}
	return nil
}

// ValidatePriceRange kiểm tra khoảng giá lọc phòng
func ValidatePriceRange(min, max float64) error {
	if min < 0 || max < 0 {
		return apperrors.Validation("Price range must not be negative")
	}
	if min > max {
		return apperrors.Validation("Minimum price must not exceed maximum price")
	}
	return nil
}

// ValidateStay: ngày bắt đầu trước ngày kết thúc và không ở quá khứ
func ValidateStay(start, end, today time.Time) error {
	if !start.Before(end) {
		return apperrors.Validation("Start date must be before end date")
	}
	if start.Before(today) {
		return apperrors.Validation("Start date cannot be in the past")
	}
	return nil
}

// ValidateComment kiểm tra độ dài và từ cấm trong nội dung bình luận
func ValidateComment(content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return apperrors.NewAppError(apperrors.ErrCodeRequiredField, "Comment cannot be empty", nil)
	}
	if len([]rune(trimmed)) > constants.MaxCommentLength {
		return apperrors.Validation(fmt.Sprintf("Comment must be at most %d characters", constants.MaxCommentLength))
	}
	if ContainsProhibitedWords(trimmed) {
		return apperrors.Validation("Comment contains prohibited words")
	}
	return nil
}

func ContainsProhibitedWords(content string) bool {
	lower := strings.ToLower(content)
	for _, w := range prohibitedWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
