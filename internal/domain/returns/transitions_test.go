package returns_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsalazarc/Ventas-api/internal/domain/entity"
	"github.com/jsalazarc/Ventas-api/internal/domain/returns"
)

var allStates = []string{
	entity.ReturnStatePendiente,
	entity.ReturnStateAprobada,
	entity.ReturnStateRechazada,
	entity.ReturnStateCompletada,
}

// Matriz completa de transiciones: cada par (origen, destino) con su legalidad.
func TestCanTransition_MatrizCompleta(t *testing.T) {
	legal := map[[2]string]bool{
		{entity.ReturnStatePendiente, entity.ReturnStateAprobada}:  true,
		{entity.ReturnStatePendiente, entity.ReturnStateRechazada}: true,
		{entity.ReturnStateAprobada, entity.ReturnStateCompletada}: true,
		{entity.ReturnStateAprobada, entity.ReturnStateRechazada}:  true,
	}
	for _, from := range allStates {
		for _, to := range allStates {
			want := legal[[2]string{from, to}]
			assert.Equal(t, want, returns.CanTransition(from, to),
				"transición %s → %s", from, to)
		}
	}
}

func TestCanTransition_PendienteNoSaltaACompletada(t *testing.T) {
	assert.False(t, returns.CanTransition(entity.ReturnStatePendiente, entity.ReturnStateCompletada),
		"PENDIENTE no puede saltar directo a COMPLETADA")
}

func TestCanTransition_DesdeTerminalesTodoFalla(t *testing.T) {
	for _, from := range []string{entity.ReturnStateRechazada, entity.ReturnStateCompletada} {
		for _, to := range allStates {
			assert.False(t, returns.CanTransition(from, to),
				"desde estado terminal %s no debe permitirse %s", from, to)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, returns.IsTerminal(entity.ReturnStatePendiente))
	assert.False(t, returns.IsTerminal(entity.ReturnStateAprobada))
	assert.True(t, returns.IsTerminal(entity.ReturnStateRechazada))
	assert.True(t, returns.IsTerminal(entity.ReturnStateCompletada))
	assert.False(t, returns.IsTerminal("INEXISTENTE"), "un estado desconocido no es terminal")
}

func TestValidState(t *testing.T) {
	for _, s := range allStates {
		assert.True(t, returns.ValidState(s))
	}
	assert.False(t, returns.ValidState("EN_REVISION"))
	assert.False(t, returns.ValidState(""))
}
