// Package returns define la máquina de estados del flujo de devoluciones como
// datos puros: una tabla de transiciones legales y funciones que conmutan
// sobre ella. Los estados no llevan comportamiento adosado.
package returns

import "github.com/jsalazarc/Ventas-api/internal/domain/entity"

// transitions tabla de transiciones legales. RECHAZADA y COMPLETADA son
// terminales: no aparecen como origen de ninguna transición.
var transitions = map[string][]string{
	entity.ReturnStatePendiente: {
		entity.ReturnStateAprobada,
		entity.ReturnStateRechazada,
	},
	entity.ReturnStateAprobada: {
		entity.ReturnStateCompletada,
		entity.ReturnStateRechazada,
	},
	entity.ReturnStateRechazada:  {},
	entity.ReturnStateCompletada: {},
}

// CanTransition indica si el paso from → to es legal según la tabla.
// Ningún paso retrocede ni salta estados (PENDIENTE no llega directo a COMPLETADA).
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal indica si el estado no admite ninguna transición de salida.
func IsTerminal(state string) bool {
	next, ok := transitions[state]
	return ok && len(next) == 0
}

// ValidState indica si el estado pertenece al conjunto cerrado del flujo.
func ValidState(state string) bool {
	_, ok := transitions[state]
	return ok
}
