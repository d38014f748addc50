package ui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/bkeenke/bkcloud-cli/internal/application"
	"github.com/bkeenke/bkcloud-cli/internal/domain"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case bootDoneMsg:
		m.booting = false
		m.auth = msg.state
		if m.auth.Authenticated {
			return m, m.enterTab(m.deps.Tabs.Active())
		}
		return m, nil

	case loginDoneMsg:
		m.formBusy = false
		if msg.err != nil {
			m.formErr = msg.err
			return m, nil
		}
		m.auth = msg.state
		m.formErr = nil
		m.registering = false
		m.resetLoginForm()
		return m, m.enterTab(m.deps.Tabs.Active())

	case logoutDoneMsg:
		m.auth = msg.state
		m.owned = nil
		m.catalog = nil
		m.forecast = domain.Forecast{}
		m.deps.Tabs.CloseOverlay()
		m.resetLoginForm()
		return m, nil

	case refreshUserMsg:
		m.auth = msg.state
		return m, nil

	case catalogMsg:
		m.catalogLoading = false
		m.catalog = msg.items
		m.catalogErr = msg.err
		if m.catalogCursor >= len(m.catalog) {
			m.catalogCursor = 0
		}
		return m, nil

	case ownedMsg:
		m.ownedLoading = false
		m.owned = msg.items
		m.ownedErr = msg.err
		if m.ownedCursor >= len(m.owned) {
			m.ownedCursor = 0
		}
		return m, nil

	case forecastMsg:
		m.forecast = msg.forecast
		m.forecastErr = msg.err
		return m, nil

	case detailMsg:
		m.detailLoading = false
		m.detail = msg.service
		m.detailErr = msg.err
		return m, nil

	case decisionMsg:
		m.confirmBusy = false
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		return m.applyDecision(msg.decision)

	case orderPlacedMsg:
		m.confirmBusy = false
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.deps.Tabs.CloseOverlay()
		m.setNotice("Услуга заказана")
		m.log.Info("order confirmed", zap.Int64("owned_id", msg.owned.ID))
		m.ownedLoading = true
		m.catalogLoading = true
		return m, tea.Batch(m.loadOwnedCmd(), m.loadCatalogCmd(), m.refreshUserCmd())

	case topUpFormMsg:
		m.topUpLoading = false
		if msg.err != nil {
			m.topUpErr = msg.err
			return m, nil
		}
		m.paySystems = msg.systems
		m.forecast = msg.forecast
		m.topUpErr = nil
		if m.payCursor >= len(m.paySystems) {
			m.payCursor = 0
		}
		// Nothing carried in: prefill with the amount the forecast says is
		// missing, if any.
		if prompt, ok := m.deps.Tabs.TopUp(); ok && prompt.Amount == 0 && m.amountInput.Value() == "" {
			if debt := msg.forecast.Debt(); debt > 0 {
				m.amountInput.SetValue(strconv.Itoa(debt))
			}
		}
		return m, nil

	case topUpDoneMsg:
		m.topUpBusy = false
		if msg.err != nil {
			m.topUpErr = msg.err
			return m, nil
		}
		m.topUpResult = &msg.result
		m.topUpErr = nil
		return m, m.refreshUserCmd()

	case deleteDoneMsg:
		if msg.err != nil {
			m.detailErr = msg.err
			return m, nil
		}
		m.deps.Tabs.CloseOverlay()
		m.setNotice("Услуга удалена")
		return m, tea.Batch(m.loadOwnedCmd(), m.refreshUserCmd())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.booting {
		return m, nil
	}

	if !m.auth.Authenticated {
		return m.handleUnauthenticatedKey(msg)
	}

	switch m.deps.Tabs.Overlay() {
	case application.OverlayTopUp:
		return m.handleTopUpKey(msg)
	case application.OverlayConfirm:
		return m.handleConfirmKey(msg)
	case application.OverlayServiceDetail:
		return m.handleDetailKey(msg)
	}

	return m.handleTabKey(msg)
}

func (m Model) handleUnauthenticatedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.auth.Hosted {
		// Hosted auth failed; only retry or quit make sense.
		switch msg.String() {
		case "r":
			m.booting = true
			return m, m.bootCmd()
		case "q":
			return m, tea.Quit
		}
		return m, nil
	}

	if m.formBusy {
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		m.moveLoginFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.moveLoginFocus(-1)
		return m, nil
	case "ctrl+r":
		if m.deps.Auth.CanRegister() {
			m.registering = !m.registering
			m.formErr = nil
			if !m.registering && m.loginFocus == focusConfirm {
				m.moveLoginFocus(-1)
			}
		}
		return m, nil
	case "enter":
		return m.submitLoginForm()
	case "esc":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.loginInputs[m.loginFocus], cmd = m.loginInputs[m.loginFocus].Update(msg)
	return m, cmd
}

func (m *Model) moveLoginFocus(delta int) {
	fields := 2
	if m.registering {
		fields = 3
	}

	m.loginInputs[m.loginFocus].Blur()
	m.loginFocus = (m.loginFocus + delta + fields) % fields
	m.loginInputs[m.loginFocus].Focus()
}

func (m Model) submitLoginForm() (tea.Model, tea.Cmd) {
	creds := domain.Credentials{
		Login:    m.loginInputs[focusLogin].Value(),
		Password: m.loginInputs[focusPassword].Value(),
	}

	m.formBusy = true
	m.formErr = nil
	if m.registering {
		return m, tea.Batch(m.spinner.Tick, m.registerCmd(creds, m.loginInputs[focusConfirm].Value()))
	}
	return m, tea.Batch(m.spinner.Tick, m.loginCmd(creds))
}

func (m *Model) resetLoginForm() {
	for i := range m.loginInputs {
		m.loginInputs[i].SetValue("")
		m.loginInputs[i].Blur()
	}
	m.loginFocus = focusLogin
	m.loginInputs[focusLogin].Focus()
	m.formErr = nil
	m.formBusy = false
}

func (m Model) handleTabKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1", "2", "3", "4":
		n, _ := strconv.Atoi(msg.String())
		return m.switchTab(application.Tab(n - 1))
	case "tab", "right":
		next := (m.deps.Tabs.Active() + 1) % 4
		return m.switchTab(next)
	case "shift+tab", "left":
		prev := (m.deps.Tabs.Active() + 3) % 4
		return m.switchTab(prev)
	case "r":
		return m, m.enterTab(m.deps.Tabs.Active())
	case "t":
		return m.openTopUp(0, 0)
	case "up", "k":
		m.moveCursor(-1)
		return m, nil
	case "down", "j":
		m.moveCursor(1)
		return m, nil
	case "enter":
		return m.selectCurrent()
	case "l":
		if m.deps.Tabs.Active() == application.TabProfile {
			return m, m.logoutCmd()
		}
	}
	return m, nil
}

func (m Model) switchTab(tab application.Tab) (tea.Model, tea.Cmd) {
	if !m.deps.Tabs.SwitchTab(tab) {
		return m, nil
	}
	m.notice = ""
	return m, m.enterTab(tab)
}

// enterTab kicks off the loads the tab renders from.
func (m *Model) enterTab(tab application.Tab) tea.Cmd {
	switch tab {
	case application.TabHome:
		m.ownedLoading = true
		return tea.Batch(m.spinner.Tick, m.loadOwnedCmd(), m.loadForecastCmd(), m.refreshUserCmd())
	case application.TabTariffs:
		m.catalogLoading = true
		return tea.Batch(m.spinner.Tick, m.loadCatalogCmd())
	case application.TabSubscriptions:
		m.ownedLoading = true
		return tea.Batch(m.spinner.Tick, m.loadOwnedCmd())
	case application.TabProfile:
		return m.refreshUserCmd()
	}
	return nil
}

func (m *Model) moveCursor(delta int) {
	switch m.deps.Tabs.Active() {
	case application.TabTariffs:
		m.catalogCursor = clamp(m.catalogCursor+delta, len(m.catalog))
	case application.TabHome, application.TabSubscriptions:
		m.ownedCursor = clamp(m.ownedCursor+delta, len(m.owned))
	}
}

func clamp(v, n int) int {
	if n == 0 {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

func (m Model) selectCurrent() (tea.Model, tea.Cmd) {
	switch m.deps.Tabs.Active() {
	case application.TabTariffs:
		if len(m.catalog) == 0 {
			return m, nil
		}
		m.confirmBusy = true
		m.deps.Bridge.HapticImpact("light")
		return m, tea.Batch(m.spinner.Tick, m.evaluateCmd(m.catalog[m.catalogCursor]))

	case application.TabHome, application.TabSubscriptions:
		if len(m.owned) == 0 {
			return m, nil
		}
		service := m.owned[m.ownedCursor]
		m.deps.Tabs.OpenService(service.ID)
		m.detail = service
		m.detailLoading = true
		m.detailErr = nil
		return m, tea.Batch(m.spinner.Tick, m.loadDetailCmd(service.ID))
	}
	return m, nil
}

func (m Model) applyDecision(decision application.OrderDecision) (tea.Model, tea.Cmd) {
	switch decision.Kind {
	case application.DecideConfirm:
		m.deps.Tabs.OpenConfirm(decision.Service)
		return m, nil
	case application.DecideTopUp:
		return m.openTopUp(decision.Amount, decision.PendingServiceID)
	}
	return m, nil
}

func (m Model) openTopUp(amount int, pendingServiceID int64) (tea.Model, tea.Cmd) {
	m.deps.Tabs.OpenTopUp(amount, pendingServiceID)
	m.topUpLoading = true
	m.topUpBusy = false
	m.topUpErr = nil
	m.topUpResult = nil
	m.payCursor = 0
	if amount > 0 {
		m.amountInput.SetValue(strconv.Itoa(amount))
	} else {
		m.amountInput.SetValue("")
	}
	m.amountInput.Focus()
	return m, tea.Batch(m.spinner.Tick, m.loadTopUpFormCmd())
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmBusy {
		return m, nil
	}

	switch msg.String() {
	case "enter", "y":
		service, ok := m.deps.Tabs.Confirm()
		if !ok {
			m.deps.Tabs.CloseOverlay()
			return m, nil
		}
		m.confirmBusy = true
		return m, tea.Batch(m.spinner.Tick, m.placeOrderCmd(service.ID))
	case "esc", "n":
		// Declined: nothing was sent and nothing will be.
		m.deps.Tabs.CloseOverlay()
		return m, nil
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.deps.Tabs.CloseOverlay()
		return m, nil
	case "d":
		if m.detailLoading {
			return m, nil
		}
		return m, m.deleteServiceCmd(m.deps.Tabs.ServiceID())
	case "t":
		return m.openTopUp(0, 0)
	}
	return m, nil
}

func (m Model) handleTopUpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.topUpBusy {
		return m, nil
	}

	if m.topUpResult != nil {
		// Payment link produced; any key closes the overlay.
		m.deps.Tabs.CloseOverlay()
		m.topUpResult = nil
		return m, tea.Batch(m.loadForecastCmd(), m.refreshUserCmd())
	}

	prompt, _ := m.deps.Tabs.TopUp()

	switch msg.String() {
	case "esc":
		m.deps.Tabs.CloseOverlay()
		return m, nil
	case "up":
		m.payCursor = clamp(m.payCursor-1, len(m.paySystems))
		return m, nil
	case "down":
		m.payCursor = clamp(m.payCursor+1, len(m.paySystems))
		return m, nil
	case "enter":
		return m.submitTopUp(prompt)
	}

	// Digits 1-4 pick a preset while the field is still empty; once the
	// user starts typing they edit the amount directly.
	if m.amountInput.Value() == "" && application.ShowPresets(m.forecast, prompt.Amount) {
		if idx := presetIndex(msg.String()); idx >= 0 {
			m.amountInput.SetValue(strconv.Itoa(application.PresetAmounts[idx]))
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.amountInput, cmd = m.amountInput.Update(msg)
	return m, cmd
}

func presetIndex(key string) int {
	switch key {
	case "1":
		return 0
	case "2":
		return 1
	case "3":
		return 2
	case "4":
		return 3
	}
	return -1
}

func (m Model) submitTopUp(prompt application.TopUpPrompt) (tea.Model, tea.Cmd) {
	if len(m.paySystems) == 0 {
		m.topUpErr = domain.ErrNoPaySystem
		return m, nil
	}

	req := application.TopUpRequest{
		Amount:           domain.SanitizeAmount(m.amountInput.Value()),
		PaySystem:        m.paySystems[m.payCursor],
		PendingServiceID: prompt.PendingServiceID,
	}

	m.topUpBusy = true
	m.topUpErr = nil
	return m, tea.Batch(m.spinner.Tick, m.submitTopUpCmd(req))
}

func (m *Model) setNotice(text string) {
	m.notice = text
	m.noticeErr = false
}

func (m *Model) setError(err error) {
	m.notice = err.Error()
	m.noticeErr = true
}
