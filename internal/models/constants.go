package models

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

const ContactStatusNew = "new"

const (
	// SyncQueueSize размер очереди воркера синхронизации
	SyncQueueSize = 128

	// DefaultCacheTTL время жизни кэша каталога
	DefaultCacheTTL = 30 * 60 // 30 минут в секундах
)
