// Package cli implementa la consola interactiva del simulador: renderiza el
// estado (inventario, pedidos, compras, faltantes) y traduce los comandos
// del planificador a llamadas al motor. Solo presentación; todas las reglas
// viven en el core.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/jcastano/fabrica-sim/internal/application/dto"
	"github.com/jcastano/fabrica-sim/internal/application/simulation"
	"github.com/jcastano/fabrica-sim/internal/domain/entity"
)

// Console es el bucle interactivo sobre un motor de simulación.
type Console struct {
	engine *simulation.Engine
	in     io.Reader
	out    io.Writer
}

// New construye la consola sobre el motor.
func New(engine *simulation.Engine, in io.Reader, out io.Writer) *Console {
	return &Console{engine: engine, in: in, out: out}
}

// Run ejecuta el bucle de comandos hasta `salir` o EOF.
func (c *Console) Run() error {
	c.printf("Simulador de planta — día %d. Escriba `ayuda` para ver los comandos.\n", c.engine.CurrentDay())
	c.renderView()

	scanner := bufio.NewScanner(c.in)
	for {
		c.printf("\ndía %d> ", c.engine.CurrentDay())
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := strings.ToLower(fields[0]), fields[1:]

		switch cmd {
		case "salir":
			return nil
		case "ayuda":
			c.printHelp()
		case "ver":
			c.renderView()
		case "avanzar":
			c.cmdAdvance(args)
		case "comprar":
			c.cmdPurchase(args)
		case "faltantes":
			c.cmdShortages(args)
		case "eventos":
			c.cmdEvents(args)
		default:
			c.printf("comando desconocido %q; escriba `ayuda`\n", cmd)
		}
	}
}

func (c *Console) printHelp() {
	c.printf(`Comandos:
  ver                         muestra el estado actual
  avanzar [id,id,...]         avanza un día liberando los pedidos indicados
  comprar <prod> <prov> <qty> emite una orden de compra de materia prima
  faltantes <id,id,...>       faltantes para una selección candidata
  eventos [día]               diario de eventos (opcionalmente de un día)
  salir                       termina
`)
}

func (c *Console) cmdAdvance(args []string) {
	var selected []entity.OrderID
	if len(args) > 0 {
		ids, err := parseIDList(args[0])
		if err != nil {
			c.printf("selección inválida: %v\n", err)
			return
		}
		selected = ids
	}
	summary, err := c.engine.AdvanceDay(selected, nil)
	if err != nil {
		c.printf("no se pudo avanzar el día: %v\n", err)
		return
	}
	c.renderSummary(summary)
	c.renderView()
}

func (c *Console) cmdPurchase(args []string) {
	if len(args) != 3 {
		c.printf("uso: comprar <producto_id> <proveedor_id> <cantidad>\n")
		return
	}
	productID, err1 := strconv.ParseInt(args[0], 10, 64)
	supplierID, err2 := strconv.ParseInt(args[1], 10, 64)
	qty, err3 := decimal.NewFromString(args[2])
	if err1 != nil || err2 != nil || err3 != nil {
		c.printf("uso: comprar <producto_id> <proveedor_id> <cantidad>\n")
		return
	}
	po, err := c.engine.IssuePurchaseOrder(entity.ProductID(productID), entity.SupplierID(supplierID), qty)
	if err != nil {
		c.printf("compra rechazada: %v\n", err)
		return
	}
	c.printf("OC %d emitida: %s x %s a %s; llega el día %d (costo total %s)\n",
		po.ID, po.Quantity.String(), po.ProductName, po.SupplierName, po.ArrivalDay, po.TotalCost.String())
}

func (c *Console) cmdShortages(args []string) {
	if len(args) == 0 {
		c.printf("uso: faltantes <id,id,...>\n")
		return
	}
	ids, err := parseIDList(args[0])
	if err != nil {
		c.printf("selección inválida: %v\n", err)
		return
	}
	shortages, err := c.engine.ShortagesFor(ids)
	if err != nil {
		c.printf("no se pudieron calcular faltantes: %v\n", err)
		return
	}
	if len(shortages) == 0 {
		c.printf("sin faltantes: la selección puede liberarse con el stock actual\n")
		return
	}
	c.renderShortages(shortages)
}

func (c *Console) cmdEvents(args []string) {
	events := c.engine.Events()
	var dayFilter *int
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil {
			c.printf("uso: eventos [día]\n")
			return
		}
		dayFilter = &d
	}
	w := c.tab()
	fmt.Fprintln(w, "DÍA\tEVENTO\tDETALLES")
	for _, e := range events {
		if dayFilter != nil && e.SimDay != *dayFilter {
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%v\n", e.SimDay, e.Type, e.Details)
	}
	w.Flush()
}

func (c *Console) renderView() {
	view := c.engine.CurrentView()

	c.printf("\n== Inventario (día %d) ==\n", view.Day)
	w := c.tab()
	fmt.Fprintln(w, "ID\tPRODUCTO\tTIPO\tCANTIDAD")
	for _, line := range view.Inventory {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", line.ProductID, line.ProductName, line.Type, line.Quantity.String())
	}
	w.Flush()

	c.printf("\n== Pedidos de fabricación elegibles ==\n")
	if len(view.PendingOrders) == 0 {
		c.printf("(ninguno)\n")
	} else {
		w = c.tab()
		fmt.Fprintln(w, "ID\tPRODUCTO\tCANTIDAD\tCREADO\tESTADO")
		for _, o := range view.PendingOrders {
			fmt.Fprintf(w, "%d\t%s\t%s\tdía %d\t%s\n", o.ID, o.ProductName, o.Quantity.String(), o.CreationDay, o.Status)
		}
		w.Flush()
	}

	c.printf("\n== Órdenes de compra en tránsito ==\n")
	if len(view.InTransitPurchases) == 0 {
		c.printf("(ninguna)\n")
	} else {
		w = c.tab()
		fmt.Fprintln(w, "ID\tPRODUCTO\tPROVEEDOR\tCANTIDAD\tEMITIDA\tLLEGA")
		for _, po := range view.InTransitPurchases {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\tdía %d\tdía %d\n",
				po.ID, po.ProductName, po.SupplierName, po.Quantity.String(), po.IssueDay, po.ArrivalDay)
		}
		w.Flush()
	}

	if len(view.Shortages) > 0 {
		c.printf("\n== Faltantes de materiales (pedidos elegibles) ==\n")
		c.renderShortages(view.Shortages)
	}
}

func (c *Console) renderSummary(s dto.DaySummaryDTO) {
	c.printf("\n--- Resumen del día %d ---\n", s.Day)
	for _, po := range s.Arrivals {
		c.printf("llegó OC %d: %s x %s\n", po.ID, po.Quantity.String(), po.ProductName)
	}
	for _, o := range s.CompletedOrders {
		c.printf("pedido %d COMPLETADO: %s x %s\n", o.ID, o.Quantity.String(), o.ProductName)
	}
	for _, o := range s.BlockedOrders {
		c.printf("pedido %d BLOQUEADO por falta de materiales\n", o.ID)
	}
	for _, o := range s.DeferredOrders {
		c.printf("pedido %d sin procesar: capacidad diaria agotada\n", o.ID)
	}
	for _, o := range s.NewOrders {
		c.printf("demanda nueva: pedido %d, %s x %s\n", o.ID, o.Quantity.String(), o.ProductName)
	}
	c.printf("capacidad usada: %s\n", s.CapacityUsed.String())
}

func (c *Console) renderShortages(shortages []dto.ShortageDTO) {
	w := c.tab()
	fmt.Fprintln(w, "ID\tMATERIAL\tFALTAN\tEN MANO")
	for _, s := range shortages {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.ProductID, s.ProductName, s.Missing.String(), s.OnHand.String())
	}
	w.Flush()
}

func (c *Console) tab() *tabwriter.Writer {
	return tabwriter.NewWriter(c.out, 2, 4, 2, ' ', 0)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// parseIDList convierte "1,2,3" en IDs de pedido, preservando el orden dado
// (los desempates bajo capacidad parcial dependen de este orden).
func parseIDList(s string) ([]entity.OrderID, error) {
	parts := strings.Split(s, ",")
	ids := make([]entity.OrderID, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q no es un ID de pedido", part)
		}
		ids = append(ids, entity.OrderID(id))
	}
	return ids, nil
}
