package get_availability

import "time"

// Request модель запроса на получение свободных слотов
type Request struct {
	BusinessID int64     // ID бизнеса
	ServiceID  int64     // ID услуги
	Date       time.Time // День, на который запрашиваются слоты (без времени)
	OpenHour   *int      // Час открытия [0..23], nil = значение по умолчанию
	CloseHour  *int      // Час закрытия [0..23], nil = значение по умолчанию
}

// Response модель ответа со списком свободных слотов
type Response struct {
	BusinessID int64       // ID бизнеса
	ServiceID  int64       // ID услуги
	Date       time.Time   // День, на который запрашивались слоты
	Slots      []time.Time // Начала свободных слотов по возрастанию
}
