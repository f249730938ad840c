package archive_expired_bookings

// Response итоги одного прохода архивации
// Провал одной записи не прерывает проход: остальные записи обрабатываются,
// неудачные будут подхвачены следующим проходом
type Response struct {
	Scanned  int // Сколько истёкших записей нашлось
	Archived int
	Failed   int
}
