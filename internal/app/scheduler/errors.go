package scheduler

import "errors"

var (
	// ErrEmptyInput — текст пустой или состоит только из пробелов.
	ErrEmptyInput = errors.New("нет текста для печати")

	// ErrJobInProgress — предыдущее задание ещё не завершилось.
	ErrJobInProgress = errors.New("печать уже выполняется")

	// ErrInvalidRate — скорость должна быть положительным числом.
	ErrInvalidRate = errors.New("некорректная скорость печати")

	// ErrInvalidStartDelay — отсчёт должен быть в пределах [0, MaxStartDelay].
	ErrInvalidStartDelay = errors.New("некорректная задержка старта")

	// ErrInjectionFailed — ввод символа не удался и политика требует прервать задание.
	ErrInjectionFailed = errors.New("не удалось ввести символ")

	// ErrInvalidPolicy — противоречивые параметры политики задержек.
	ErrInvalidPolicy = errors.New("некорректная политика задержек")
)
