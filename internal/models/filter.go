package models

const (
	// FilterAll — без фильтра по статусу.
	FilterAll = "all"
	// FilterActive — только активные абонементы.
	FilterActive = "active"
	// FilterExpired — только неактивные абонементы.
	FilterExpired = "expired"
)

// SubscriptionFilter описывает фильтр по уже загруженному списку абонементов.
type SubscriptionFilter struct {
	Status string // all, active или expired; пустое значение равно all
	Search string // Подстрока имени клиента без учёта регистра
}
