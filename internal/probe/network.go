package probe

import (
	"context"
	"fmt"

	psnet "github.com/shirou/gopsutil/v4/net"

	"horizonx-top/internal/domain"
)

type Network struct {
	ifaces []domain.InterfaceRaw
}

var _ domain.NetworkProbe = (*Network)(nil)

func NewNetwork() *Network {
	return &Network{}
}

func (n *Network) Refresh(ctx context.Context) error {
	counters, err := psnet.IOCountersWithContext(ctx, true)
	if err != nil {
		return fmt.Errorf("read interface counters: %w", err)
	}

	ifaces := make([]domain.InterfaceRaw, 0, len(counters))
	for _, c := range counters {
		ifaces = append(ifaces, domain.InterfaceRaw{
			Name:    c.Name,
			RxTotal: c.BytesRecv,
			TxTotal: c.BytesSent,
		})
	}
	n.ifaces = ifaces

	return nil
}

func (n *Network) Networks() []domain.InterfaceRaw {
	return n.ifaces
}
