// ABOUTME: Portfolio graph generation with graphviz
// ABOUTME: Clients link to their contacts and negotiations; negotiations link to the products they quote
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/ostwick/crm/crm"
	"github.com/ostwick/crm/models"
)

type GraphGenerator struct {
	state *crm.State
}

func NewGraphGenerator(state *crm.State) *GraphGenerator {
	return &GraphGenerator{state: state}
}

// GeneratePortfolioGraph renders the whole portfolio, or one client's part
// of it when clientID is set, as DOT source.
func (g *GraphGenerator) GeneratePortfolioGraph(clientID *int64) (string, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer graph.Close()

	graph.SetLabel("CRM Portfolio")
	graph.SetRankDir(cgraph.LRRank)

	clients := g.state.Clients()
	if clientID != nil {
		c, ok := g.state.Client(*clientID)
		if !ok {
			return "", fmt.Errorf("client %d not found", *clientID)
		}
		clients = []models.Client{c}
	}

	productNodes := make(map[string]*cgraph.Node)
	for _, client := range clients {
		clientNode, err := graph.CreateNodeByName(fmt.Sprintf("client_%d", client.ID))
		if err != nil {
			return "", fmt.Errorf("failed to create client node: %w", err)
		}
		clientNode.SetLabel(fmt.Sprintf("%s\n(Client)", client.Name))
		clientNode.SetShape("box")
		clientNode.SetStyle("filled")
		clientNode.SetFillColor("lightblue")

		for _, contact := range g.state.ContactsFor(client.ID) {
			node, err := graph.CreateNodeByName(fmt.Sprintf("contact_%d", contact.ID))
			if err != nil {
				return "", fmt.Errorf("failed to create contact node: %w", err)
			}
			node.SetLabel(fmt.Sprintf("%s\n%s", contact.Name, contact.Role))
			node.SetShape("ellipse")
			node.SetStyle("filled")
			node.SetFillColor("lightgreen")

			edge, err := graph.CreateEdgeByName("works_at", node, clientNode)
			if err != nil {
				return "", fmt.Errorf("failed to create edge: %w", err)
			}
			edge.SetLabel("works at")
			edge.SetStyle("dashed")
		}

		for _, neg := range g.state.NegotiationsFor(client.ID) {
			node, err := graph.CreateNodeByName(fmt.Sprintf("negotiation_%d", neg.ID))
			if err != nil {
				return "", fmt.Errorf("failed to create negotiation node: %w", err)
			}
			node.SetLabel(fmt.Sprintf("%s\n%s\n(%s)", neg.Description, FormatMoney(g.state.NegotiationTotal(neg.ID)), neg.Status))
			node.SetShape("diamond")
			node.SetStyle("filled")
			node.SetFillColor(statusColor(neg.Status))

			edge, err := graph.CreateEdgeByName("negotiation", clientNode, node)
			if err != nil {
				return "", fmt.Errorf("failed to create edge: %w", err)
			}
			edge.SetLabel("negotiation")

			for _, li := range g.state.LineItemsFor(neg.ID) {
				productNode, ok := productNodes[li.ProductID]
				if !ok {
					productNode, err = graph.CreateNodeByName(fmt.Sprintf("product_%d", len(productNodes)+1))
					if err != nil {
						return "", fmt.Errorf("failed to create product node: %w", err)
					}
					productNode.SetLabel(li.ProductName)
					productNode.SetShape("note")
					productNodes[li.ProductID] = productNode
				}

				edge, err := graph.CreateEdgeByName("quotes", node, productNode)
				if err != nil {
					return "", fmt.Errorf("failed to create edge: %w", err)
				}
				edge.SetLabel(fmt.Sprintf("x%d", li.Quantity))
				edge.SetStyle("dotted")
			}
		}
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}

	return buf.String(), nil
}

func statusColor(s models.NegotiationStatus) string {
	switch s {
	case models.StatusWon:
		return "palegreen"
	case models.StatusLost:
		return "lightpink"
	default:
		return "lightyellow"
	}
}
