package conversation

// User-facing texts of the intake dialogue.
const (
	msgAccessDenied = "Извините, у вас нет доступа к этому боту."

	msgGreeting = "Вас приветствует онлайн помощник.\nПожалуйста, отправьте свой номер телефона, используя кнопку ниже."

	msgAskName   = "Спасибо! Теперь введите ваше ФИО (только кириллица, минимум имя и фамилия):"
	msgNameRetry = "Пожалуйста, введите корректное ФИО (только кириллица, минимум имя и фамилия). Попробуйте ещё раз."

	msgNameAccepted = "ФИО принято. Идёт поиск информации по номеру телефона... Пожалуйста, подождите..."
	msgAskDocument  = "Теперь введите ваш СНИЛС или серию и номер паспорта (без пробелов)."

	msgBadSNILS         = "Неверный формат СНИЛС. Попробуйте ещё раз."
	msgBadPassport      = "Неверный формат паспорта. Попробуйте ещё раз."
	msgAskDocumentAgain = "Пожалуйста, введите корректный СНИЛС (11 цифр) или паспорт (серия и номер без пробелов)."

	msgChecking = "Идёт проверка данных в государственных базах и кредитной истории... Пожалуйста, подождите..."
	msgAccepted = "Спасибо! Ваша заявка принята и передана на проверку."

	msgDispatchFailed = "Не удалось передать заявку на проверку. Попробуйте отправить документ ещё раз."
	msgUseStart       = "Чтобы начать, отправьте команду /start."
)
