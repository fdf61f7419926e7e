package get_available_slots

import (
	"time"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BusinessID int64     // ID бизнеса
	ServiceID  int64     // ID услуги
	Date       time.Time // Дата для получения слотов (компонент времени игнорируется)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date       time.Time // Дата, на которую запрашивались слоты
	BusinessID int64     // ID бизнеса
	ServiceID  int64     // ID услуги
	Slots      []Slot    // Список доступных слотов в хронологическом порядке
}

// Slot модель доступного временного слота
// StartsAt - неформатированный timestamp начала; отображение времени
// (12/24-часовой формат) - забота слоя представления
type Slot struct {
	StartsAt        time.Time
	DurationMinutes int
}
