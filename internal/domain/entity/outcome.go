package entity

// Status итог анализа одного изображения
type Status string

const (
	StatusSuccess  Status = "success"  // болезнь из белого списка найдена
	StatusRejected Status = "rejected" // подходящих детекций нет
	StatusError    Status = "error"    // не удалось загрузить изображение или выполнить инференс
)

// Outcome результат анализа изображения.
// Disease заполняется только при StatusSuccess.
type Outcome struct {
	Status     Status  `json:"status"`
	Disease    string  `json:"disease,omitempty"`
	Confidence float64 `json:"confidence"`
	Message    string  `json:"message"`
}

// Success создаёт успешный результат с отображаемым названием болезни.
func Success(disease string, confidence float64, message string) Outcome {
	return Outcome{
		Status:     StatusSuccess,
		Disease:    disease,
		Confidence: confidence,
		Message:    message,
	}
}

// Rejected создаёт результат-отказ.
func Rejected(message string, confidence float64) Outcome {
	return Outcome{
		Status:     StatusRejected,
		Confidence: confidence,
		Message:    message,
	}
}

// Failed создаёт результат-ошибку, уверенность всегда 0.
func Failed(message string) Outcome {
	return Outcome{
		Status:  StatusError,
		Message: message,
	}
}

// IsSuccess сообщает, распознана ли болезнь из белого списка.
func (o Outcome) IsSuccess() bool {
	return o.Status == StatusSuccess
}
