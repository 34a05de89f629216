package create_draft

import (
	"time"

	"github.com/avdk/SBM-ReservationService/internal/domain"
)

// Request модель запроса на создание черновика
type Request struct {
	Auth             domain.AuthContext
	MenuID           int64  // ID услуги
	ResourceID       int64  // ID мастера, 0 = любой
	SlotID           string // слот из выдачи генератора
	Date             string // дата слота (YYYY-MM-DD)
	Timezone         string // пустое значение = таймзона заведения из конфигурации
	IsStaffPreferred bool   // клиент явно выбрал мастера
	Memo             string // пожелание клиента (опционально)
}

// Response модель ответа с созданным черновиком
type Response struct {
	Token         string              // токен для подтверждения
	ExpiresAt     time.Time           // момент истечения черновика
	Slot          domain.SlotSnapshot // зафиксированный слот
	NominationFee float64             // надбавка за явный выбор мастера (справочно)
}
