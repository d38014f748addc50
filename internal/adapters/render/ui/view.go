package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bkeenke/bkcloud-cli/internal/application"
	"github.com/bkeenke/bkcloud-cli/internal/domain"
)

var tabTitles = []string{"Главная", "Тарифы", "Подписки", "Профиль"}

func (m Model) View() string {
	if m.booting {
		return fmt.Sprintf("\n  %s Подключение...\n", m.spinner.View())
	}

	if !m.auth.Authenticated {
		if m.auth.Hosted {
			return m.viewHostedError()
		}
		return m.viewLogin()
	}

	sections := []string{
		m.viewHeader(),
		m.viewTabBar(),
		"",
		m.viewBody(),
	}

	if m.notice != "" {
		style := m.styles.notice
		if m.noticeErr {
			style = m.styles.errText
		}
		sections = append(sections, "", style.Render(m.notice))
	}

	sections = append(sections, m.styles.help.Render(m.helpLine()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewHostedError() string {
	lines := []string{
		m.styles.title.Render(m.deps.ProfileLabel),
		"",
		m.styles.errText.Render("Не удалось войти через Telegram."),
	}
	if m.auth.Err != nil {
		lines = append(lines, m.styles.detail.Render(m.auth.Err.Error()))
	}
	lines = append(lines, "", m.styles.help.Render("r повторить • q выход"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewLogin() string {
	title := "Вход"
	if m.registering {
		title = "Регистрация"
	}

	lines := []string{
		m.styles.title.Render(m.deps.ProfileLabel),
		m.styles.header.Render(title),
		"",
		m.styles.input.Render(m.loginInputs[focusLogin].View()),
		m.styles.input.Render(m.loginInputs[focusPassword].View()),
	}
	if m.registering {
		lines = append(lines, m.styles.input.Render(m.loginInputs[focusConfirm].View()))
	}

	if m.formBusy {
		lines = append(lines, "", fmt.Sprintf("%s Проверка...", m.spinner.View()))
	}
	if m.formErr != nil {
		lines = append(lines, "", m.styles.errText.Render(m.formErr.Error()))
	}

	help := "enter войти • tab поле • esc выход"
	if m.deps.Auth.CanRegister() {
		if m.registering {
			help = "enter создать аккаунт • ctrl+r назад ко входу • esc выход"
		} else {
			help += " • ctrl+r регистрация"
		}
	}
	lines = append(lines, m.styles.help.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewHeader() string {
	label := m.styles.title.Render(m.deps.ProfileLabel)
	balance := m.styles.balance.Render(fmt.Sprintf("%.2f ₽", m.auth.User.Balance))
	user := m.styles.header.Render(m.auth.User.Login)
	return fmt.Sprintf("%s  %s  %s", label, user, balance)
}

func (m Model) viewTabBar() string {
	parts := make([]string, 0, len(tabTitles))
	for i, title := range tabTitles {
		if application.Tab(i) == m.deps.Tabs.Active() {
			parts = append(parts, m.styles.tabActive.Render(title))
		} else {
			parts = append(parts, m.styles.tab.Render(title))
		}
	}
	return strings.Join(parts, m.styles.tab.Render(" │ "))
}

func (m Model) viewBody() string {
	switch m.deps.Tabs.Overlay() {
	case application.OverlayTopUp:
		return m.viewTopUp()
	case application.OverlayConfirm:
		return m.viewConfirm()
	case application.OverlayServiceDetail:
		return m.viewDetail()
	}

	switch m.deps.Tabs.Active() {
	case application.TabHome:
		return m.viewHome()
	case application.TabTariffs:
		return m.viewTariffs()
	case application.TabSubscriptions:
		return m.viewSubscriptions()
	case application.TabProfile:
		return m.viewProfile()
	}
	return ""
}

func (m Model) viewHome() string {
	lines := []string{}

	if m.forecastErr == nil && m.forecast.HasUnpaid() {
		if debt := m.forecast.Debt(); debt > 0 {
			lines = append(lines,
				m.styles.statusBad.Render(fmt.Sprintf("Задолженность: %d ₽. Нажмите t для пополнения.", debt)),
				"")
		}
	}

	lines = append(lines, m.styles.cardTitle.Render("Мои услуги"))
	lines = append(lines, m.viewOwnedList())
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewTariffs() string {
	if m.catalogLoading {
		return fmt.Sprintf("%s Загрузка тарифов...", m.spinner.View())
	}
	if m.catalogErr != nil {
		return m.viewLoadError(m.catalogErr)
	}
	if len(m.catalog) == 0 {
		return m.styles.empty.Render("Нет доступных тарифов.")
	}

	lines := make([]string, 0, len(m.catalog))
	for i, service := range m.catalog {
		marker := "  "
		nameStyle := m.styles.cardTitle
		if i == m.catalogCursor {
			marker = m.styles.cursor.Render("> ")
			nameStyle = m.styles.cursor
		}

		price := m.styles.price.Render(fmt.Sprintf("%.0f ₽", service.Cost))
		if service.PeriodCost > 0 {
			price = m.styles.price.Render(fmt.Sprintf("%.0f ₽/мес", service.PeriodCost))
		}
		lines = append(lines, fmt.Sprintf("%s%s  %s", marker, nameStyle.Render(service.Name), price))

		if i == m.catalogCursor && service.Description != "" {
			lines = append(lines, m.styles.card.Render(m.styles.detail.Render(service.Description)))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewSubscriptions() string {
	lines := []string{m.styles.cardTitle.Render("Подписки")}
	lines = append(lines, m.viewOwnedList())
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewOwnedList() string {
	if m.ownedLoading {
		return fmt.Sprintf("%s Загрузка...", m.spinner.View())
	}
	if m.ownedErr != nil {
		return m.viewLoadError(m.ownedErr)
	}
	if len(m.owned) == 0 {
		return m.styles.empty.Render("Пока нет услуг — загляните во вкладку «Тарифы».")
	}

	lines := make([]string, 0, len(m.owned))
	for i, service := range m.owned {
		marker := "  "
		nameStyle := m.styles.cardTitle
		if i == m.ownedCursor {
			marker = m.styles.cursor.Render("> ")
			nameStyle = m.styles.cursor
		}
		lines = append(lines, fmt.Sprintf("%s%s  %s",
			marker, nameStyle.Render(service.Name), m.renderStatus(service.Status)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) viewProfile() string {
	user := m.auth.User

	lines := []string{
		m.styles.cardTitle.Render("Профиль"),
		m.profileRow("Логин", user.Login),
		m.profileRow("Имя", user.FullName),
		m.profileRow("Телефон", user.Phone),
		m.profileRow("Баланс", fmt.Sprintf("%.2f ₽", user.Balance)),
	}
	if user.Discount > 0 {
		lines = append(lines, m.profileRow("Скидка", fmt.Sprintf("%.0f%%", user.Discount)))
	}
	if !user.Created.IsZero() {
		lines = append(lines, m.profileRow("Регистрация", user.Created.Format("02.01.2006")))
	}
	if m.deps.SupportURL != "" {
		lines = append(lines, "", m.styles.detail.Render("Поддержка: "+m.deps.SupportURL))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) profileRow(key, value string) string {
	if value == "" {
		value = "—"
	}
	return fmt.Sprintf("%s %s", m.styles.header.Render(key+":"), m.styles.detail.Render(value))
}

func (m Model) viewDetail() string {
	if m.detailLoading {
		return fmt.Sprintf("%s Загрузка услуги...", m.spinner.View())
	}
	if m.detailErr != nil {
		return m.viewLoadError(m.detailErr)
	}

	service := m.detail
	lines := []string{
		m.styles.cardTitle.Render(service.Name),
		m.profileRow("Статус", statusTitle(service.Status)),
		m.profileRow("Стоимость", fmt.Sprintf("%.2f ₽", service.Cost)),
	}
	if !service.Expire.IsZero() {
		lines = append(lines, m.profileRow("Действует до", service.Expire.Format("02.01.2006")))
	}
	if !service.Created.IsZero() {
		lines = append(lines, m.profileRow("Подключена", service.Created.Format("02.01.2006")))
	}

	return m.styles.overlay.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) viewConfirm() string {
	service, ok := m.deps.Tabs.Confirm()
	if !ok {
		return ""
	}

	lines := []string{
		m.styles.cardTitle.Render("Подтверждение заказа"),
		"",
		m.styles.detail.Render(service.Name),
		m.styles.price.Render(fmt.Sprintf("Стоимость: %.2f ₽", service.Cost)),
		"",
	}
	if m.confirmBusy {
		lines = append(lines, fmt.Sprintf("%s Оформление...", m.spinner.View()))
	} else {
		lines = append(lines, m.styles.button.Render("enter подтвердить")+m.styles.help.Render("  esc отмена"))
	}
	return m.styles.overlay.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) viewTopUp() string {
	if m.topUpLoading {
		return fmt.Sprintf("%s Загрузка способов оплаты...", m.spinner.View())
	}

	if m.topUpResult != nil {
		lines := []string{m.styles.cardTitle.Render("Пополнение")}
		if m.topUpResult.External {
			lines = append(lines, m.styles.notice.Render("Ссылка на оплату открыта."))
		} else {
			lines = append(lines,
				m.styles.notice.Render("Перейдите по ссылке для оплаты:"),
				m.styles.detail.Render(m.topUpResult.PaymentURL))
		}
		lines = append(lines, "", m.styles.help.Render("любая клавиша — закрыть"))
		return m.styles.overlay.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	}

	prompt, _ := m.deps.Tabs.TopUp()

	lines := []string{m.styles.cardTitle.Render("Пополнение баланса")}

	if m.forecast.HasUnpaid() {
		if debt := m.forecast.Debt(); debt > 0 {
			lines = append(lines, m.styles.statusBad.Render(fmt.Sprintf("К оплате: %d ₽", debt)))
		}
	}

	lines = append(lines, m.styles.input.Render(m.amountInput.View()))

	if application.ShowPresets(m.forecast, prompt.Amount) {
		presets := make([]string, 0, len(application.PresetAmounts))
		for i, amount := range application.PresetAmounts {
			presets = append(presets, fmt.Sprintf("%d: %d ₽", i+1, amount))
		}
		lines = append(lines, m.styles.detail.Render(strings.Join(presets, "  ")))
	}

	lines = append(lines, "", m.styles.header.Render("Способ оплаты:"))
	if len(m.paySystems) == 0 {
		lines = append(lines, m.styles.empty.Render("Способы оплаты не настроены."))
	}
	for i, system := range m.paySystems {
		marker := "  "
		style := m.styles.detail
		if i == m.payCursor {
			marker = m.styles.cursor.Render("> ")
			style = m.styles.cursor
		}
		lines = append(lines, marker+style.Render(system.Name))
	}

	if m.topUpBusy {
		lines = append(lines, "", fmt.Sprintf("%s Создание платежа...", m.spinner.View()))
	}
	if m.topUpErr != nil {
		lines = append(lines, "", m.styles.errText.Render(topUpErrorText(m.topUpErr)))
	}

	lines = append(lines, m.styles.help.Render("enter оплатить • ↑/↓ способ • esc отмена"))
	return m.styles.overlay.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// topUpErrorText maps the validation sentinels onto the form's copy; anything
// else surfaces as-is.
func topUpErrorText(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoPaySystem):
		return "Выберите способ оплаты."
	case errors.Is(err, domain.ErrInvalidAmount):
		return "Введите сумму пополнения."
	case errors.Is(err, domain.ErrPaySystemDown):
		return "Платёжная система недоступна."
	default:
		return err.Error()
	}
}

func (m Model) viewLoadError(err error) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.errText.Render("Не удалось загрузить данные."),
		m.styles.detail.Render(err.Error()),
		m.styles.help.Render("r повторить"))
}

func (m Model) renderStatus(status domain.ServiceStatus) string {
	title := statusTitle(status)
	switch status {
	case domain.StatusActive:
		return m.styles.statusOK.Render(title)
	case domain.StatusNotPaid:
		return m.styles.statusBad.Render(title)
	case domain.StatusBlocked, domain.StatusDisabled:
		return m.styles.statusWarn.Render(title)
	default:
		return m.styles.empty.Render(title)
	}
}

func statusTitle(status domain.ServiceStatus) string {
	switch status {
	case domain.StatusActive:
		return "Активна"
	case domain.StatusBlocked:
		return "Заблокирована"
	case domain.StatusNotPaid:
		return "Не оплачена"
	case domain.StatusDisabled:
		return "Отключена"
	default:
		return "—"
	}
}

func (m Model) helpLine() string {
	switch m.deps.Tabs.Overlay() {
	case application.OverlayServiceDetail:
		return "esc назад • d удалить • t пополнить"
	case application.OverlayConfirm, application.OverlayTopUp:
		return ""
	}

	base := "←/→ вкладки • ↑/↓ выбор • enter открыть • t пополнить • r обновить • q выход"
	if m.deps.Tabs.Active() == application.TabProfile {
		base += " • l выйти из аккаунта"
	}
	return base
}
